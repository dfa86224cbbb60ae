// Copyright (c) 2022 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filterclient

import (
	"context"

	"github.com/palantir/conjure-go-runtime/v2/conjure-go-client/httpclient"
	"github.com/palantir/filter-client-go/config"
	werror "github.com/palantir/witchcraft-go-error"
)

const defaultServiceName = "filter-service"

// NewClientFromConfig builds the transport client from the provided
// configuration and returns a Client using it. Additional params take
// precedence over configuration-derived ones.
func NewClientFromConfig(ctx context.Context, cfg config.Client, params ...httpclient.ClientParam) (Client, error) {
	defaults := []httpclient.ClientParam{
		httpclient.WithConfig(clientConfigWithServiceName(cfg)),
		httpclient.WithMetrics(),
	}
	conjureClient, err := httpclient.NewClient(append(defaults, params...)...)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to build filter service transport client")
	}
	return NewClient(conjureClient), nil
}

// NewClientFromRefreshableConfig is NewClientFromConfig for live-reloadable
// configuration: the transport client picks up URI, token, timeout, and
// security changes without reconstruction.
func NewClientFromRefreshableConfig(ctx context.Context, cfg config.RefreshableClient, params ...httpclient.ClientParam) (Client, error) {
	refreshableConf := httpclient.NewRefreshingClientConfig(cfg.MapClient(func(c config.Client) interface{} {
		return clientConfigWithServiceName(c)
	}))
	defaults := []httpclient.ClientParam{
		httpclient.WithMetrics(),
	}
	conjureClient, err := httpclient.NewClientFromRefreshableConfig(ctx, refreshableConf, append(defaults, params...)...)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to build filter service transport client")
	}
	return NewClient(conjureClient), nil
}

func clientConfigWithServiceName(cfg config.Client) httpclient.ClientConfig {
	clientConf := cfg.ClientConfig
	clientConf.ServiceName = cfg.ServiceName
	if clientConf.ServiceName == "" {
		clientConf.ServiceName = defaultServiceName
	}
	return clientConf
}

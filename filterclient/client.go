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

// Package filterclient provides a client for a service's saved-filter REST
// resource. Each method maps to a single endpoint under "/filter" and issues
// exactly one outbound request; transport concerns (base-URL resolution, JSON
// codecs, redirects, retries, HTTP error decoding) belong to the injected
// httpclient.Client. The client holds no mutable state and is safe for
// concurrent use.
package filterclient

import (
	"context"

	"github.com/palantir/conjure-go-runtime/v2/conjure-go-client/httpclient"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

const filterBasePath = "/filter"

// Client provides access to the filter resource of the remote service.
//
// All methods return transport failures unchanged from the underlying
// httpclient.Client; responses with status >= 400 surface as errors whose
// status code is recoverable via httpclient.StatusCodeFromError.
type Client interface {
	// CreateFilter saves a new filter and returns the created record.
	CreateFilter(ctx context.Context, filter Filter, params ...CreateFilterParam) (Filter, error)
	// GetFilter returns the filter with the provided identifier.
	GetFilter(ctx context.Context, filterID int, params ...GetFilterParam) (Filter, error)
	// UpdateFilter replaces the filter with the provided identifier and
	// returns the updated record.
	UpdateFilter(ctx context.Context, filterID int, filter Filter) (Filter, error)
	// GetFilterColumns returns the filter's ordered column configuration.
	GetFilterColumns(ctx context.Context, filterID int) ([]Column, error)
	// SetFilterColumns replaces the filter's column configuration. On success
	// it returns ColumnsUpdatedMessage; the endpoint returns no useful body.
	SetFilterColumns(ctx context.Context, filterID int, columns []string) (string, error)
	// ResetFilterColumns restores the filter's column configuration to the
	// system default. On success it returns ColumnsResetMessage.
	ResetFilterColumns(ctx context.Context, filterID int) (string, error)
	// GetDefaultShareScope returns the caller's default share scope for newly
	// created filters.
	GetDefaultShareScope(ctx context.Context) (ShareScope, error)
	// SetDefaultShareScope sets the caller's default share scope. The scope
	// must be ShareScopeGlobal or ShareScopePrivate.
	SetDefaultShareScope(ctx context.Context, scope ShareScope) (ShareScope, error)
}

type client struct {
	httpClient httpclient.Client
}

// NewClient returns a Client that dispatches requests using the provided
// httpclient.Client. The httpclient.Client owns base-URL configuration and
// authentication; see NewClientFromConfig for a configuration-driven
// constructor.
func NewClient(httpClient httpclient.Client) Client {
	return &client{httpClient: httpClient}
}

func (c *client) CreateFilter(ctx context.Context, filter Filter, params ...CreateFilterParam) (Filter, error) {
	if filter == nil {
		return nil, werror.ErrorWithContextParams(ctx, "filter body is required to create a filter")
	}
	b := newRequestBuilder()
	if err := b.applyCreateParams(params); err != nil {
		return nil, err
	}
	var created Filter
	if _, err := c.httpClient.Post(ctx,
		httpclient.WithRPCMethodName("CreateFilter"),
		httpclient.WithPath(filterBasePath),
		httpclient.WithQueryValues(b.query),
		httpclient.WithJSONRequest(filter),
		httpclient.WithJSONResponse(&created),
	); err != nil {
		return nil, err
	}
	svc1log.FromContext(ctx).Debug("Created filter.")
	return created, nil
}

func (c *client) GetFilter(ctx context.Context, filterID int, params ...GetFilterParam) (Filter, error) {
	if err := validateFilterID(ctx, filterID); err != nil {
		return nil, err
	}
	b := newRequestBuilder()
	if err := b.applyGetParams(params); err != nil {
		return nil, err
	}
	var filter Filter
	if _, err := c.httpClient.Get(ctx,
		httpclient.WithRPCMethodName("GetFilter"),
		httpclient.WithPathf("%s/%d", filterBasePath, filterID),
		httpclient.WithQueryValues(b.query),
		httpclient.WithJSONResponse(&filter),
	); err != nil {
		return nil, err
	}
	return filter, nil
}

func (c *client) UpdateFilter(ctx context.Context, filterID int, filter Filter) (Filter, error) {
	if err := validateFilterID(ctx, filterID); err != nil {
		return nil, err
	}
	if filter == nil {
		return nil, werror.ErrorWithContextParams(ctx, "filter body is required to update a filter",
			werror.SafeParam("filterId", filterID))
	}
	var updated Filter
	if _, err := c.httpClient.Put(ctx,
		httpclient.WithRPCMethodName("UpdateFilter"),
		httpclient.WithPathf("%s/%d", filterBasePath, filterID),
		httpclient.WithJSONRequest(filter),
		httpclient.WithJSONResponse(&updated),
	); err != nil {
		return nil, err
	}
	svc1log.FromContext(ctx).Debug("Updated filter.", svc1log.SafeParam("filterId", filterID))
	return updated, nil
}

func (c *client) GetFilterColumns(ctx context.Context, filterID int) ([]Column, error) {
	if err := validateFilterID(ctx, filterID); err != nil {
		return nil, err
	}
	var columns []Column
	if _, err := c.httpClient.Get(ctx,
		httpclient.WithRPCMethodName("GetFilterColumns"),
		httpclient.WithPathf("%s/%d/columns", filterBasePath, filterID),
		httpclient.WithJSONResponse(&columns),
	); err != nil {
		return nil, err
	}
	return columns, nil
}

func (c *client) SetFilterColumns(ctx context.Context, filterID int, columns []string) (string, error) {
	if err := validateFilterID(ctx, filterID); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", werror.ErrorWithContextParams(ctx, "at least one column is required to set filter columns",
			werror.SafeParam("filterId", filterID))
	}
	for i, column := range columns {
		if column == "" {
			return "", werror.ErrorWithContextParams(ctx, "column names must be non-empty",
				werror.SafeParam("filterId", filterID),
				werror.SafeParam("index", i))
		}
	}
	if _, err := c.httpClient.Put(ctx,
		httpclient.WithRPCMethodName("SetFilterColumns"),
		httpclient.WithPathf("%s/%d/columns", filterBasePath, filterID),
		httpclient.WithJSONRequest(columnsRequest{Columns: columns}),
	); err != nil {
		return "", err
	}
	svc1log.FromContext(ctx).Debug("Updated filter columns.", svc1log.SafeParam("filterId", filterID))
	return ColumnsUpdatedMessage, nil
}

func (c *client) ResetFilterColumns(ctx context.Context, filterID int) (string, error) {
	if err := validateFilterID(ctx, filterID); err != nil {
		return "", err
	}
	if _, err := c.httpClient.Delete(ctx,
		httpclient.WithRPCMethodName("ResetFilterColumns"),
		httpclient.WithPathf("%s/%d/columns", filterBasePath, filterID),
	); err != nil {
		return "", err
	}
	svc1log.FromContext(ctx).Debug("Reset filter columns.", svc1log.SafeParam("filterId", filterID))
	return ColumnsResetMessage, nil
}

func (c *client) GetDefaultShareScope(ctx context.Context) (ShareScope, error) {
	var scope DefaultShareScope
	if _, err := c.httpClient.Get(ctx,
		httpclient.WithRPCMethodName("GetDefaultShareScope"),
		httpclient.WithPath(filterBasePath+"/defaultShareScope"),
		httpclient.WithJSONResponse(&scope),
	); err != nil {
		return "", err
	}
	return scope.Scope, nil
}

func (c *client) SetDefaultShareScope(ctx context.Context, scope ShareScope) (ShareScope, error) {
	switch scope {
	case ShareScopeGlobal, ShareScopePrivate:
	default:
		return "", werror.ErrorWithContextParams(ctx, "share scope must be GLOBAL or PRIVATE",
			werror.UnsafeParam("scope", string(scope)))
	}
	var updated DefaultShareScope
	if _, err := c.httpClient.Put(ctx,
		httpclient.WithRPCMethodName("SetDefaultShareScope"),
		httpclient.WithPath(filterBasePath+"/defaultShareScope"),
		httpclient.WithJSONRequest(DefaultShareScope{Scope: scope}),
		httpclient.WithJSONResponse(&updated),
	); err != nil {
		return "", err
	}
	svc1log.FromContext(ctx).Debug("Updated default share scope.")
	return updated.Scope, nil
}

func validateFilterID(ctx context.Context, filterID int) error {
	if filterID <= 0 {
		return werror.ErrorWithContextParams(ctx, "filterId must be a positive identifier",
			werror.SafeParam("filterId", filterID))
	}
	return nil
}

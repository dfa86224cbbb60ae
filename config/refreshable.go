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

package config

import (
	"context"
	"crypto/sha256"
	"io/ioutil"
	"time"

	"github.com/palantir/pkg/refreshable"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

const defaultFileSyncPeriod = time.Second

// RefreshableClient is a live-reloadable view of Client configuration.
type RefreshableClient interface {
	CurrentClient() Client
	MapClient(mapFn func(Client) interface{}) refreshable.Refreshable
	SubscribeToClient(consumer func(Client)) (unsubscribe func())
}

// NewRefreshingClient wraps a refreshable whose current value is always a
// Client.
func NewRefreshingClient(in refreshable.Refreshable) RefreshableClient {
	return refreshingClient{Refreshable: in}
}

type refreshingClient struct {
	refreshable.Refreshable
}

func (r refreshingClient) CurrentClient() Client {
	return r.Current().(Client)
}

func (r refreshingClient) MapClient(mapFn func(Client) interface{}) refreshable.Refreshable {
	return r.Map(func(i interface{}) interface{} {
		return mapFn(i.(Client))
	})
}

func (r refreshingClient) SubscribeToClient(consumer func(Client)) (unsubscribe func()) {
	return r.Subscribe(func(i interface{}) {
		consumer(i.(Client))
	})
}

// NewFileRefreshable returns a RefreshableClient backed by the YAML
// configuration file at the provided path, checked every defaultFileSyncPeriod.
// The watching goroutine terminates when the provided context is done.
func NewFileRefreshable(ctx context.Context, filePath string, ecvKey ECVKeyProvider) (RefreshableClient, error) {
	return NewFileRefreshableWithDuration(ctx, filePath, ecvKey, defaultFileSyncPeriod)
}

// NewFileRefreshableWithDuration is NewFileRefreshable with a caller-supplied
// sync period. Configuration that fails to load after the initial read is
// logged and skipped; the refreshable retains its previous value.
func NewFileRefreshableWithDuration(ctx context.Context, filePath string, ecvKey ECVKeyProvider, duration time.Duration) (RefreshableClient, error) {
	initialBytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to read configuration file",
			werror.SafeParam("filePath", filePath))
	}
	initialCfg, err := FromYAML(initialBytes, ecvKey)
	if err != nil {
		return nil, err
	}
	underlying := refreshable.NewDefaultRefreshable(initialCfg)

	go func() {
		fileChecksum := sha256.Sum256(initialBytes)
		ticker := time.NewTicker(duration)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			fileBytes, err := ioutil.ReadFile(filePath)
			if err != nil {
				svc1log.FromContext(ctx).Warn("Failed to read refreshable configuration file.",
					svc1log.SafeParam("filePath", filePath),
					svc1log.Stacktrace(err))
				continue
			}
			loadedChecksum := sha256.Sum256(fileBytes)
			if loadedChecksum == fileChecksum {
				continue
			}
			fileChecksum = loadedChecksum
			cfg, err := FromYAML(fileBytes, ecvKey)
			if err != nil {
				svc1log.FromContext(ctx).Warn("Failed to load refreshable configuration file.",
					svc1log.SafeParam("filePath", filePath),
					svc1log.Stacktrace(err))
				continue
			}
			if err := underlying.Update(cfg); err != nil {
				svc1log.FromContext(ctx).Warn("Failed to update refreshable configuration.",
					svc1log.Stacktrace(err))
			}
		}
	}()

	return NewRefreshingClient(underlying), nil
}

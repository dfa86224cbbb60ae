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
	"net/url"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"
)

const (
	fieldsQueryKey = "fields"
	expandQueryKey = "expand"
)

type requestBuilder struct {
	query url.Values
}

// GetFilterParam is an optional parameter for GetFilter.
type GetFilterParam interface {
	applyGet(*requestBuilder) error
}

// CreateFilterParam is an optional parameter for CreateFilter.
type CreateFilterParam interface {
	applyCreate(*requestBuilder) error
}

// GetOrCreateFilterParam is a parameter accepted by both GetFilter and
// CreateFilter.
type GetOrCreateFilterParam interface {
	GetFilterParam
	CreateFilterParam
}

type getFilterParamFunc func(*requestBuilder) error

func (f getFilterParamFunc) applyGet(b *requestBuilder) error {
	return f(b)
}

type getOrCreateFilterParamFunc func(*requestBuilder) error

func (f getOrCreateFilterParamFunc) applyGet(b *requestBuilder) error {
	return f(b)
}

func (f getOrCreateFilterParamFunc) applyCreate(b *requestBuilder) error {
	return f(b)
}

// WithFields restricts the fields of the filter record returned by the
// service to the named ones. The values are sent as a single comma-joined
// "fields" query parameter.
func WithFields(fields ...string) GetFilterParam {
	return getFilterParamFunc(func(b *requestBuilder) error {
		return b.setListParam(fieldsQueryKey, fields)
	})
}

// WithExpand asks the service to expand the named sub-entities of the
// returned filter record (for example "sharedUsers"). The values are sent as
// a single comma-joined "expand" query parameter.
func WithExpand(expand ...string) GetOrCreateFilterParam {
	return getOrCreateFilterParamFunc(func(b *requestBuilder) error {
		return b.setListParam(expandQueryKey, expand)
	})
}

func newRequestBuilder() *requestBuilder {
	return &requestBuilder{query: make(url.Values)}
}

func (b *requestBuilder) applyGetParams(params []GetFilterParam) error {
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.applyGet(b); err != nil {
			return err
		}
	}
	return nil
}

func (b *requestBuilder) applyCreateParams(params []CreateFilterParam) error {
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.applyCreate(b); err != nil {
			return err
		}
	}
	return nil
}

// setListParam serializes values as a single comma-joined query value. The
// joined value never carries a leading or trailing comma and never contains
// an empty segment: empty inputs are rejected up front so that a malformed
// query string is never sent.
func (b *requestBuilder) setListParam(key string, values []string) error {
	joined, err := joinListParam(key, values)
	if err != nil {
		return err
	}
	b.query.Set(key, joined)
	return nil
}

func joinListParam(key string, values []string) (string, error) {
	if len(values) == 0 {
		return "", werror.Error("list parameter requires at least one value", werror.SafeParam("param", key))
	}
	for i, v := range values {
		if v == "" {
			return "", werror.Error("list parameter values must be non-empty",
				werror.SafeParam("param", key),
				werror.SafeParam("index", i))
		}
	}
	return strings.Join(values, ","), nil
}

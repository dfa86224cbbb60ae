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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinListParam(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Values   []string
		Expected string
	}{
		{
			Name:     "single value",
			Values:   []string{"sharedUsers"},
			Expected: "sharedUsers",
		},
		{
			Name:     "multiple values",
			Values:   []string{"name", "jql", "favourite"},
			Expected: "name,jql,favourite",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			joined, err := joinListParam("fields", test.Values)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, joined)
			assert.False(t, strings.HasPrefix(joined, ","))
			assert.False(t, strings.HasSuffix(joined, ","))
			// Splitting recovers the input exactly, with no empty segments.
			assert.Equal(t, test.Values, strings.Split(joined, ","))
		})
	}
}

func TestJoinListParam_Errors(t *testing.T) {
	_, err := joinListParam("expand", nil)
	require.EqualError(t, err, "list parameter requires at least one value")

	_, err = joinListParam("expand", []string{"sharedUsers", ""})
	require.EqualError(t, err, "list parameter values must be non-empty")
}

func TestRequestBuilder_AbsentParamsProduceNoKeys(t *testing.T) {
	b := newRequestBuilder()
	require.NoError(t, b.applyGetParams(nil))
	assert.Empty(t, b.query)

	_, fieldsPresent := b.query[fieldsQueryKey]
	_, expandPresent := b.query[expandQueryKey]
	assert.False(t, fieldsPresent)
	assert.False(t, expandPresent)
}

func TestRequestBuilder_NilParamsSkipped(t *testing.T) {
	b := newRequestBuilder()
	require.NoError(t, b.applyGetParams([]GetFilterParam{nil, WithFields("name")}))
	assert.Equal(t, "name", b.query.Get(fieldsQueryKey))
}

func TestRequestBuilder_LastParamWins(t *testing.T) {
	b := newRequestBuilder()
	require.NoError(t, b.applyGetParams([]GetFilterParam{
		WithFields("name"),
		WithFields("jql", "favourite"),
	}))
	require.NoError(t, b.applyGetParams([]GetFilterParam{WithExpand("sharedUsers")}))

	assert.Equal(t, []string{"jql,favourite"}, b.query[fieldsQueryKey])
	assert.Equal(t, []string{"sharedUsers"}, b.query[expandQueryKey])
}

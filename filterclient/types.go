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

// Filter is a saved search record. The schema is owned by the remote service:
// the client forwards filter payloads verbatim as JSON and never interprets
// individual fields, so new server-side fields require no client changes.
type Filter map[string]interface{}

// Column is a single entry in a filter's ordered column configuration.
type Column struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ShareScope is the default visibility applied to newly created filters.
type ShareScope string

const (
	// ShareScopeGlobal makes newly created filters visible to all users.
	ShareScopeGlobal ShareScope = "GLOBAL"
	// ShareScopePrivate makes newly created filters visible only to their owner.
	ShareScopePrivate ShareScope = "PRIVATE"
)

// DefaultShareScope is the wire record exchanged with the defaultShareScope
// endpoints.
type DefaultShareScope struct {
	Scope ShareScope `json:"scope"`
}

const (
	// ColumnsUpdatedMessage is the confirmation returned by SetFilterColumns.
	// The columns mutation endpoints return no useful response body, so the
	// client substitutes this literal on success.
	ColumnsUpdatedMessage = "Columns Updated"
	// ColumnsResetMessage is the confirmation returned by ResetFilterColumns.
	ColumnsResetMessage = "Columns Reset"
)

type columnsRequest struct {
	Columns []string `json:"columns"`
}

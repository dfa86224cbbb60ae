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

// Package config defines the YAML-backed configuration for the filter service
// client. Configuration values encrypted with the encrypted-config-value
// tooling are decrypted at load time given an ECV key provider.
package config

import (
	"crypto/tls"

	"github.com/palantir/conjure-go-runtime/v2/conjure-go-client/httpclient"
	"github.com/palantir/pkg/tlsconfig"
	werror "github.com/palantir/witchcraft-go-error"
	yaml "gopkg.in/yaml.v2"
)

// Client is the configuration for a single filter service client. The
// embedded httpclient.ClientConfig carries the transport-level settings
// (URIs, api-token, timeouts, retries, security material).
type Client struct {
	httpclient.ClientConfig `yaml:",inline"`

	// ServiceName identifies the remote service in logs and metrics. Defaults
	// to "filter-service" when empty.
	ServiceName string `yaml:"service-name,omitempty"`
}

// FromYAML unmarshals Client configuration from the provided YAML bytes,
// decrypting any encrypted-config-value variables using the key from the
// provided provider. The provider may be nil if the configuration contains no
// encrypted values.
func FromYAML(cfgBytes []byte, ecvKey ECVKeyProvider) (Client, error) {
	decryptedBytes, err := decryptConfigBytes(cfgBytes, ecvKey)
	if err != nil {
		return Client{}, err
	}
	var cfg Client
	if err := yaml.Unmarshal(decryptedBytes, &cfg); err != nil {
		return Client{}, werror.Wrap(err, "failed to unmarshal client configuration YAML")
	}
	return cfg, nil
}

// TLSConfig builds a *tls.Config from the security block, or returns nil when
// no security material is configured. Useful for callers that construct their
// own HTTP clients from this configuration.
func (c Client) TLSConfig() (*tls.Config, error) {
	sec := c.Security
	if len(sec.CAFiles) == 0 && sec.CertFile == "" && sec.KeyFile == "" {
		return nil, nil
	}
	params := []tlsconfig.ClientParam{
		tlsconfig.ClientRootCAFiles(sec.CAFiles...),
	}
	if sec.CertFile != "" || sec.KeyFile != "" {
		params = append(params, tlsconfig.ClientKeyPairFiles(sec.CertFile, sec.KeyFile))
	}
	conf, err := tlsconfig.NewClientConfig(params...)
	if err != nil {
		return nil, werror.Wrap(err, "failed to build client TLS configuration")
	}
	return conf, nil
}

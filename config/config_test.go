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

package config_test

import (
	"io/ioutil"
	"path"
	"testing"
	"time"

	"github.com/palantir/filter-client-go/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testECVKey         = `AES:Nu2OInDbOHhXCNqqt1yyDuPwZwaJrSjV+IAypbZhw6Y=`
	testEncryptedValue = `${enc:/pSQ0v8R3QR8WOLnxoAWTsnI6kkjGgQMbqFcU9UC+LxStdGbfg1i3R9mlVZjEuXuecVG5AK1Sq109YxUcg==}`
	// testEncryptedValue decrypts to "hello, world!" with testECVKey.
	testDecryptedValue = "hello, world!"
)

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
service-name: filter-service
uris:
  - https://tracker.example.com/api/2
api-token: secret-token
max-num-retries: 3
read-timeout: 30s
`), nil)
	require.NoError(t, err)

	assert.Equal(t, "filter-service", cfg.ServiceName)
	assert.Equal(t, []string{"https://tracker.example.com/api/2"}, cfg.URIs)
	require.NotNil(t, cfg.APIToken)
	assert.Equal(t, "secret-token", *cfg.APIToken)
	require.NotNil(t, cfg.MaxNumRetries)
	assert.Equal(t, 3, *cfg.MaxNumRetries)
	require.NotNil(t, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, *cfg.ReadTimeout)
}

func TestFromYAML_DecryptsEncryptedValues(t *testing.T) {
	keyFile := path.Join(t.TempDir(), "encrypted-config-value.key")
	require.NoError(t, ioutil.WriteFile(keyFile, []byte(testECVKey), 0644))

	cfg, err := config.FromYAML([]byte(`
uris:
  - https://tracker.example.com/api/2
api-token: `+testEncryptedValue+`
`), config.ECVKeyFromFile(keyFile))
	require.NoError(t, err)

	require.NotNil(t, cfg.APIToken)
	assert.Equal(t, testDecryptedValue, *cfg.APIToken)
}

func TestFromYAML_EncryptedValuesRequireKey(t *testing.T) {
	_, err := config.FromYAML([]byte(`api-token: `+testEncryptedValue), nil)
	require.EqualError(t, err, "no encryption key provider configured but config contains encrypted values")
}

func TestFromYAML_MissingKeyFile(t *testing.T) {
	_, err := config.FromYAML([]byte(`api-token: `+testEncryptedValue),
		config.ECVKeyFromFile(path.Join(t.TempDir(), "no-such-file.key")))
	require.EqualError(t, err, "no encryption key configured but config contains encrypted values")
}

func TestTLSConfig_EmptyWhenNoSecurityBlock(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`uris: ["https://tracker.example.com"]`), nil)
	require.NoError(t, err)

	tlsConf, err := cfg.TLSConfig()
	require.NoError(t, err)
	assert.Nil(t, tlsConf)
}

func TestTLSConfig_MissingFiles(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
security:
  ca-files:
    - testdata/no-such-ca.pem
`), nil)
	require.NoError(t, err)

	_, err = cfg.TLSConfig()
	require.Error(t, err)
}

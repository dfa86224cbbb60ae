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
	"io/ioutil"
	"os"
	"strings"

	"github.com/palantir/go-encrypted-config-value/encryptedconfigvalue"
	werror "github.com/palantir/witchcraft-go-error"
	yamlv3 "gopkg.in/yaml.v3"
)

// ECVKeyProvider provides the key used to decrypt encrypted-config-value
// variables ("${enc:...}") in client configuration.
type ECVKeyProvider interface {
	Load() (*encryptedconfigvalue.KeyWithType, error)
}

type ecvKeyProviderFunc func() (*encryptedconfigvalue.KeyWithType, error)

func (f ecvKeyProviderFunc) Load() (*encryptedconfigvalue.KeyWithType, error) {
	return f()
}

// ECVKeyFromFile returns a provider that reads the serialized key from the
// file at the provided path. A missing file yields a nil key, which is only
// an error if the configuration actually contains encrypted values.
func ECVKeyFromFile(path string) ECVKeyProvider {
	return ecvKeyProviderFunc(func() (*encryptedconfigvalue.KeyWithType, error) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil
		}
		fileBytes, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, werror.Wrap(err, "failed to read ECV key file", werror.SafeParam("path", path))
		}
		ecvKey, err := encryptedconfigvalue.NewKeyWithType(strings.TrimSpace(string(fileBytes)))
		if err != nil {
			return nil, werror.Wrap(err, "failed to parse ECV key", werror.SafeParam("path", path))
		}
		return &ecvKey, nil
	})
}

// decryptConfigBytes returns a version of the provided input bytes in which
// any encrypted configuration values are decrypted. If the input contains no
// encrypted values this is a noop; otherwise the bytes are interpreted as
// YAML and each encrypted scalar node is replaced with its decrypted value.
func decryptConfigBytes(cfgBytes []byte, ecvKey ECVKeyProvider) ([]byte, error) {
	if !encryptedconfigvalue.ContainsEncryptedConfigValueStringVars(cfgBytes) {
		// Nothing to do
		return cfgBytes, nil
	}
	if ecvKey == nil {
		return cfgBytes, werror.Error("no encryption key provider configured but config contains encrypted values")
	}
	key, err := ecvKey.Load()
	if err != nil {
		return cfgBytes, err
	}
	if key == nil {
		return cfgBytes, werror.Error("no encryption key configured but config contains encrypted values")
	}
	decryptedBytes, err := decryptECVYAMLNodes(cfgBytes, key)
	if err != nil {
		return cfgBytes, werror.Wrap(err, "failed to decrypt values in YAML that contains encrypted values")
	}
	return decryptedBytes, nil
}

// decryptECVYAMLNodes decrypts encrypted values by walking the YAML node tree
// rather than substituting in the raw bytes: writing the updated nodes back
// out keeps the result valid YAML even when a decrypted value is multi-line.
func decryptECVYAMLNodes(yamlBytes []byte, kwt *encryptedconfigvalue.KeyWithType) ([]byte, error) {
	var yamlDocNode yamlv3.Node
	if err := yamlv3.Unmarshal(yamlBytes, &yamlDocNode); err != nil {
		return nil, werror.Wrap(err, "failed to unmarshal YAML into yaml.v3 node")
	}
	if err := decryptNodeValues(&yamlDocNode, kwt); err != nil {
		return nil, err
	}
	return yamlv3.Marshal(&yamlDocNode)
}

func decryptNodeValues(n *yamlv3.Node, kwt *encryptedconfigvalue.KeyWithType) error {
	if n == nil {
		return nil
	}
	if n.Kind == yamlv3.ScalarNode && encryptedconfigvalue.ContainsEncryptedConfigValueStringVars([]byte(n.Value)) {
		decrypted := encryptedconfigvalue.DecryptAllEncryptedValueStringVars([]byte(n.Value), *kwt)
		// The existence of encrypted values after a decryption attempt implies decryption failed.
		if encryptedconfigvalue.ContainsEncryptedConfigValueStringVars(decrypted) {
			return werror.Error("failed to decrypt encrypted-config-value in YAML node")
		}
		n.Value = string(decrypted)
	}
	for _, childNode := range n.Content {
		if err := decryptNodeValues(childNode, kwt); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-zwavegen/pkg/config"
	"github.com/goliatone/go-zwavegen/pkg/driver"
	"github.com/goliatone/go-zwavegen/pkg/prompt"
)

var imageBytes = []byte("\xff\xd8\xff\xe0fake-jpeg")

func registryServer(t *testing.T) *httptest.Server {
	t.Helper()
	record, err := os.ReadFile(filepath.Join("..", "..", "internal", "manifest", "testdata", "product_record.json"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/products/1234", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(record)
	})
	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(imageBytes)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv(config.EnvRegistryURL, server.URL+"/products/%s")
	t.Setenv(config.EnvImageURL, server.URL+"/images/%s")
	t.Setenv(config.EnvLogLevel, "error")
	return server
}

func execute(t *testing.T, prompts prompt.Driver, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(prompts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type answers struct {
	confirm bool
	id      string
}

func (a answers) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return a.confirm, nil
}

func (a answers) Input(context.Context, prompt.InputConfig) (string, error) {
	return a.id, nil
}

func TestAutocompleteWritesDriver(t *testing.T) {
	registryServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, driver.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"sensor","settings":[]}`), 0o644))

	out, err := execute(t, answers{confirm: true, id: "1234"}, "autocomplete", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Z-Wave Alliance product 1234 (3 settings)")

	cfg, err := driver.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sensor", cfg["id"])

	zwave, ok := cfg["zwave"].(map[string]any)
	require.True(t, ok, "zwave section missing: %#v", cfg)
	assert.EqualValues(t, 99, zwave["manufacturerId"])
	assert.EqualValues(t, 1234, zwave["zwaveAllianceProductId"])

	settings, ok := cfg["settings"].([]any)
	require.True(t, ok)
	assert.Len(t, settings, 3)

	image, err := os.ReadFile(filepath.Join(dir, "assets", "images", "original.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, imageBytes, image)
}

func TestAutocompleteDeclined(t *testing.T) {
	registryServer(t)
	dir := t.TempDir()

	out, err := execute(t, answers{confirm: false}, "autocomplete", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "driver left unchanged")

	_, statErr := os.Stat(filepath.Join(dir, driver.FileName))
	assert.True(t, os.IsNotExist(statErr), "driver file must not be created")
}

func TestAutocompleteUnknownID(t *testing.T) {
	registryServer(t)

	_, err := execute(t, nil, "autocomplete", t.TempDir(), "--id", "4040")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestInspectJSON(t *testing.T) {
	registryServer(t)

	out, err := execute(t, nil, "inspect", "1234")
	require.NoError(t, err)

	var doc struct {
		ZWave    map[string]any   `json:"zwave"`
		Settings []map[string]any `json:"settings"`
		Image    string           `json:"image"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.EqualValues(t, 99, doc.ZWave["manufacturerId"])
	require.Len(t, doc.Settings, 3)
	assert.Equal(t, "checkbox", doc.Settings[0]["type"])
	assert.Equal(t, "dropdown", doc.Settings[1]["type"])
	assert.Equal(t, "number", doc.Settings[2]["type"])
	assert.True(t, strings.HasSuffix(doc.Image, "/images/ZC10-17015432"), doc.Image)
}

func TestInspectYAML(t *testing.T) {
	registryServer(t)

	out, err := execute(t, nil, "inspect", "1234", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "zwave:\n"), out)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	settings, ok := doc["settings"].([]any)
	require.True(t, ok)
	first := settings[0].(map[string]any)
	assert.Equal(t, "1", first["id"], "numeric-looking ids stay strings")
}

func TestInspectRejectsUnknownFormat(t *testing.T) {
	registryServer(t)

	_, err := execute(t, nil, "inspect", "1234", "--format", "xml")
	assert.Error(t, err)
}

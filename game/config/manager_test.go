package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Rows:        5,
		Cols:        5,
		ConnectN:    3,
		TargetScore: 2,
		Players: []engine.Player{
			{Name: "Red Team", Color: engine.Red},
			{Name: "Yellow Team", Color: engine.Yellow},
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func writeRawFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.GetDefault() == nil {
		t.Fatal("Expected default config to be loaded")
	}
	if manager.GetDefault().Name != "Test Config" {
		t.Errorf("Expected default config from classic.json, got %s", manager.GetDefault().Name)
	}
}

func TestNewManager_NonExistentDir(t *testing.T) {
	_, err := NewManager("/non/existent/directory")
	if err == nil {
		t.Error("Expected error for non-existent directory")
	}
}

func TestNewManager_BuiltInDefault(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Rows != 6 || def.Cols != 7 || def.ConnectN != 4 {
		t.Errorf("Expected built-in classic 6x7 connect-4 default, got %+v", def)
	}
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("small")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Rows != 5 || config.ConnectN != 3 {
		t.Errorf("Unexpected config loaded: %+v", config)
	}

	// extension is optional and the result is cached
	again, err := manager.LoadConfig("small.json")
	if err != nil {
		t.Fatalf("Failed to load config with extension: %v", err)
	}
	if again != config {
		t.Error("Expected cached config to be returned")
	}
}

func TestManager_LoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	writeRawFile(t, dir, "blitz.yaml", `name: Blitz
description: Five by five, three in a row, single round
rows: 5
cols: 5
connect_n: 3
target_score: 1
players:
  - name: Ann
    color: yellow
  - name: Ben
    color: red
`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("blitz")
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}
	if config.Name != "Blitz" || config.TargetScore != 1 {
		t.Errorf("Unexpected YAML config: %+v", config)
	}
	if config.Players[0].Color != engine.Yellow || config.Players[1].Color != engine.Red {
		t.Errorf("Expected colors yellow/red, got %s/%s", config.Players[0].Color, config.Players[1].Color)
	}
}

func TestManager_LoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	writeRawFile(t, dir, "broken.json", `{"name": `)
	invalid := createValidConfig()
	invalid.ConnectN = 9
	writeConfigFile(t, dir, "unwinnable", invalid)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := manager.LoadConfig("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
	if _, err := manager.LoadConfig("../etc/passwd"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound for path traversal, got %v", err)
	}
	if _, err := manager.LoadConfig("broken"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for malformed JSON, got %v", err)
	}
	if _, err := manager.LoadConfig("unwinnable"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for invalid preset, got %v", err)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())
	writeRawFile(t, dir, "broken.json", `not json`)
	writeRawFile(t, dir, "notes.txt", `ignored`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}

	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs (small + built-in classic), got %d", len(configs))
	}
	if configs[0].ConfigID != "classic" || configs[1].ConfigID != "small" {
		t.Errorf("Expected sorted ids [classic small], got [%s %s]", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[1].Filename != "small.json" || configs[1].Rows != 5 || configs[1].ConnectN != 3 {
		t.Errorf("Unexpected config info: %+v", configs[1])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	loaded, err := manager.LoadConfig("saved")
	if err != nil || loaded.Name != config.Name {
		t.Errorf("Expected saved config to load back, got %v (%v)", loaded, err)
	}

	invalid := createValidConfig()
	invalid.Players = nil
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for path traversal, got %v", err)
	}
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("small"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Test Config" {
		t.Errorf("Expected small as default, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error setting a missing default")
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}
	if manager.GetDefault().Name != "classic" {
		t.Errorf("Expected built-in classic default after refresh, got %s", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("small"); err != nil {
				t.Errorf("Concurrent load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

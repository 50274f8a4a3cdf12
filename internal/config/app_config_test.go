package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/collect/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func writeConfigFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name              string
		globalContent     string
		localContent      string
		explicitPath      string
		explicitContent   string
		expectFilesOutput string
		expectFilesSkip   []string
		expectSkipFiles   []string
		expectTreeSkip    []string
		expectTreeRoot    string
		expectCopy        *bool
		expectTokens      *bool
		expectModel       string
	}{
		{
			name:              "local_overrides_global",
			globalContent:     "files:\n  output: global.txt\n  skip_folders: [.git, dist]\n  copy: true\ntree:\n  root: src\n",
			localContent:      "files:\n  skip_folders: [node_modules, node_modules]\n  skip_files: [package-lock.json]\n  tokens:\n    enabled: true\n    model: gpt-4\n",
			expectFilesOutput: "global.txt",
			expectFilesSkip:   []string{"node_modules"},
			expectSkipFiles:   []string{"package-lock.json"},
			expectTreeRoot:    "src",
			expectCopy:        boolPointer(true),
			expectTokens:      boolPointer(true),
			expectModel:       "gpt-4",
		},
		{
			name:              "explicit_path_replaces_local",
			localContent:      "files:\n  output: local.txt\n",
			explicitPath:      "custom.yaml",
			explicitContent:   "files:\n  output: custom.txt\n  copy: false\ntree:\n  skip_folders: [vendor]\n",
			expectFilesOutput: "custom.txt",
			expectTreeSkip:    []string{"vendor"},
			expectCopy:        boolPointer(false),
		},
		{
			name: "no_files_present",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				writeConfigFile(t, filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.ConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfigFile(t, filepath.Join(workingDir, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfigFile(t, filepath.Join(workingDir, testCase.explicitPath), testCase.explicitContent)
			}

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
				HomeDirectory:    homeDir,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Files.Output != testCase.expectFilesOutput {
				t.Fatalf("expected files output %q, got %q", testCase.expectFilesOutput, loadedConfig.Files.Output)
			}
			if len(testCase.expectFilesSkip) > 0 && !reflect.DeepEqual(loadedConfig.Files.SkipFolders, testCase.expectFilesSkip) {
				t.Fatalf("expected files skip folders %v, got %v", testCase.expectFilesSkip, loadedConfig.Files.SkipFolders)
			}
			if len(testCase.expectSkipFiles) > 0 && !reflect.DeepEqual(loadedConfig.Files.SkipFiles, testCase.expectSkipFiles) {
				t.Fatalf("expected skip files %v, got %v", testCase.expectSkipFiles, loadedConfig.Files.SkipFiles)
			}
			if len(testCase.expectTreeSkip) > 0 && !reflect.DeepEqual(loadedConfig.Tree.SkipFolders, testCase.expectTreeSkip) {
				t.Fatalf("expected tree skip folders %v, got %v", testCase.expectTreeSkip, loadedConfig.Tree.SkipFolders)
			}
			if loadedConfig.Tree.Root != testCase.expectTreeRoot {
				t.Fatalf("expected tree root %q, got %q", testCase.expectTreeRoot, loadedConfig.Tree.Root)
			}
			if testCase.expectCopy == nil {
				if loadedConfig.Files.Copy != nil {
					t.Fatalf("expected no copy override")
				}
			} else if loadedConfig.Files.Copy == nil || *loadedConfig.Files.Copy != *testCase.expectCopy {
				t.Fatalf("unexpected copy value")
			}
			if testCase.expectTokens == nil {
				if loadedConfig.Files.Tokens.Enabled != nil {
					t.Fatalf("expected no tokens override")
				}
			} else if loadedConfig.Files.Tokens.Enabled == nil || *loadedConfig.Files.Tokens.Enabled != *testCase.expectTokens {
				t.Fatalf("unexpected tokens enabled value")
			}
			if loadedConfig.Files.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Files.Tokens.Model)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
		HomeDirectory:    t.TempDir(),
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	workingDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDir, utils.ConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir, HomeDirectory: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error when configuration path is a directory")
	}
}

func TestLoadApplicationConfigurationRejectsInvalidYAML(t *testing.T) {
	workingDir := t.TempDir()
	writeConfigFile(t, filepath.Join(workingDir, utils.ConfigFileName), "files: [unterminated\n")
	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir, HomeDirectory: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}

func TestMergeKeepsBaseWhenOverrideEmpty(t *testing.T) {
	base := ApplicationConfiguration{
		Files: FilesConfiguration{Output: "base.txt", SkipFiles: []string{"a"}, Copy: boolPointer(true)},
		Tree:  TreeConfiguration{SkipFolders: []string{"dist"}},
	}
	merged := base.Merge(ApplicationConfiguration{})
	if merged.Files.Output != "base.txt" || !reflect.DeepEqual(merged.Files.SkipFiles, []string{"a"}) {
		t.Fatalf("unexpected files configuration %+v", merged.Files)
	}
	if merged.Files.Copy == nil || !*merged.Files.Copy {
		t.Fatalf("expected copy to be preserved")
	}
	if !reflect.DeepEqual(merged.Tree.SkipFolders, []string{"dist"}) {
		t.Fatalf("unexpected tree skip folders %v", merged.Tree.SkipFolders)
	}
}

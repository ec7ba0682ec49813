package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a renderable scene for the CLI and the web UI
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	Name        string `json:"name"`               // Display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene document (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroupName = "Built-in Scenes"

var builtinScenes = []SceneInfo{
	{
		ID:          "demo",
		Name:        "Demo Spheres",
		Description: "Red, green and blue spheres on a gray ground",
		Group:       builtinGroupName,
		Type:        "builtin",
	},
	{
		ID:          "prism",
		Name:        "Prism Panes",
		Description: "Blue-transmitting panes with a thin-lens camera",
		Group:       builtinGroupName,
		Type:        "builtin",
	},
}

// BuiltinScene builds a built-in scene by its identifier
func BuiltinScene(id string, width, height int) (*Scene, error) {
	switch id {
	case "demo":
		return NewDemoScene(width, height), nil
	case "prism":
		return NewPrismScene(width, height), nil
	default:
		return nil, fmt.Errorf("unknown built-in scene %q", id)
	}
}

// ListBuiltinScenes returns the built-in scene registry
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	copy(scenes, builtinScenes)
	return scenes
}

// ListFileScenes scans the scenes directory and returns discovered scene documents
func ListFileScenes() ([]SceneInfo, error) {
	// Try different possible paths for the scenes directory
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	pattern := filepath.Join(scenesDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		scenes = append(scenes, readSceneMetadata(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// readSceneMetadata extracts the optional name and description fields from
// a scene document, falling back to the filename
func readSceneMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       fmt.Sprintf("file:%s", nameWithoutExt),
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo
	}
	defer file.Close()

	var metadata struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(file).Decode(&metadata); err != nil {
		return sceneInfo
	}

	if metadata.Name != "" {
		sceneInfo.Name = metadata.Name
	}
	sceneInfo.Description = metadata.Description

	return sceneInfo
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in scenes first, then remaining groups alphabetically
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroupName {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtinGroup, exists := groupMap[builtinGroupName]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinGroupName,
			Scenes: builtinGroup,
		})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range validator.warnings {
		fmt.Println("Warning:" + strings.TrimPrefix(w, " "))
	}
	fmt.Println("World document is valid!")
}

type WorldValidator struct {
	errors   []string
	warnings []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("world file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.json, not my-world.json or MyWorld.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.warnings = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	w, err := world.ParseStrict(data)
	if err != nil {
		return fmt.Errorf("file %s failed strict parsing: %w", filename, err)
	}

	v.validateWorld(w)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *WorldValidator) validateWorld(w *world.World) {
	if err := w.Validate(); err != nil {
		v.addError(err.Error())
	}

	for id, loc := range w.Locations {
		v.validateIDFormat("location ID", id)

		for _, exit := range loc.Exits {
			if _, ok := w.Locations[exit.Target]; !ok {
				v.addWarning(fmt.Sprintf("exit '%s' in location '%s' leads to unknown location '%s'", exit.Direction, id, exit.Target))
			}
		}

		for _, itemID := range loc.Items {
			if _, ok := w.Items[itemID]; !ok {
				v.addError(fmt.Sprintf("location '%s' references unknown item '%s'", id, itemID))
			}
		}

		for flag := range loc.FlagsRequired {
			v.validateFlagName(fmt.Sprintf("flags_required in location '%s'", id), flag)
		}
		for flag := range loc.FlagsSet {
			v.validateFlagName(fmt.Sprintf("flags_set in location '%s'", id), flag)
		}
	}

	for id := range w.Items {
		v.validateIDFormat("item ID", id)
	}

	for _, itemID := range w.Player.Inventory {
		if _, ok := w.Items[itemID]; !ok {
			v.addError(fmt.Sprintf("player inventory references unknown item '%s'", itemID))
		}
	}

	if w.Player.CurrentLocation != "" {
		if _, ok := w.Locations[w.Player.CurrentLocation]; !ok {
			v.addError(fmt.Sprintf("player current_location '%s' is not a known location", w.Player.CurrentLocation))
		}
	}

	for flag := range w.GameFlags {
		v.validateFlagName("game_flags", flag)
	}
	for flag := range w.Player.Flags {
		v.validateFlagName("player flags", flag)
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) validateFlagName(context, name string) {
	if !isValidID(name) {
		v.addError(fmt.Sprintf("%s has invalid flag name '%s' - should be lowercase snake_case", context, name))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *WorldValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "  "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}

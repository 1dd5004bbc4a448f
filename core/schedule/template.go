package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aquatherm/poolsim/core/model"
)

// LoadTemplate loads a ScheduleTemplate from a JSON or YAML file.
func LoadTemplate(path string) (model.ScheduleTemplate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.ScheduleTemplate{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var tmpl model.ScheduleTemplate
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &tmpl)
	case ".json":
		err = json.Unmarshal(b, &tmpl)
	default:
		return model.ScheduleTemplate{}, fmt.Errorf("unsupported template format: %s", ext)
	}
	if err != nil {
		return model.ScheduleTemplate{}, err
	}
	return tmpl, tmpl.Validate()
}

// DecodeTemplate reads from r to decode a ScheduleTemplate.
func DecodeTemplate(r io.Reader, format string) (model.ScheduleTemplate, error) {
	var tmpl model.ScheduleTemplate
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&tmpl); err != nil {
			return tmpl, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&tmpl); err != nil {
			return tmpl, err
		}
	default:
		return tmpl, fmt.Errorf("unsupported format: %s", format)
	}
	return tmpl, tmpl.Validate()
}

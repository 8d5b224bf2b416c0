package ir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/wpkernel/phpgen/internal/errors"
)

var httpMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"PATCH":  true,
	"DELETE": true,
}

// Load reads and validates a descriptor file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDescriptorDecode(path, err)
	}
	return Decode(path, data)
}

// Decode parses data as JSON when name ends in .json and as YAML otherwise,
// then normalises and validates the result.
func Decode(name string, data []byte) (*Project, error) {
	var project Project

	var err error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.Unmarshal(data, &project)
	} else {
		err = yaml.Unmarshal(data, &project)
	}
	if err != nil {
		return nil, errors.NewDescriptorDecode(name, err)
	}

	if project.Origin == "" {
		project.Origin = filepath.Base(name)
	}
	for i := range project.Resources {
		normalise(&project.Resources[i])
	}
	if err := Validate(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func normalise(r *Resource) {
	r.Name = strings.TrimSpace(r.Name)
	if r.SchemaKey == "" {
		r.SchemaKey = r.Name
	}
	if r.SchemaProvenance == "" {
		r.SchemaProvenance = "manual"
	}
	for i := range r.Routes {
		r.Routes[i].Method = r.Routes[i].NormalisedMethod()
	}
	if len(r.CacheKeys.List.Segments) == 0 {
		r.CacheKeys.List.Segments = []string{r.Name, "list"}
	}
	if len(r.CacheKeys.Get.Segments) == 0 {
		r.CacheKeys.Get.Segments = []string{r.Name, "get"}
	}
	if r.Storage != nil {
		r.Storage.Mode = strings.TrimSpace(r.Storage.Mode)
	}
}

// Validate checks the fields the generator relies on.
func Validate(project *Project) error {
	seen := map[string]bool{}
	for _, resource := range project.Resources {
		if resource.Name == "" {
			return errors.NewDescriptorInvalid("", "resource name is required")
		}
		if seen[resource.Name] {
			return errors.NewDescriptorInvalid(resource.Name, "duplicate resource name")
		}
		seen[resource.Name] = true

		if err := validateResource(resource); err != nil {
			return err
		}
	}
	return nil
}

func validateResource(r Resource) error {
	for _, route := range r.Routes {
		if !httpMethods[route.Method] {
			return errors.NewDescriptorInvalid(r.Name, fmt.Sprintf("unsupported method %q on %s", route.Method, route.Path))
		}
		if strings.TrimSpace(route.Path) == "" {
			return errors.NewDescriptorInvalid(r.Name, "route path is required")
		}
	}

	if r.Identity != nil {
		switch r.Identity.Type {
		case IdentityNumber, IdentityString:
		default:
			return errors.NewDescriptorInvalid(r.Name, fmt.Sprintf("identity type must be %q or %q", IdentityNumber, IdentityString))
		}
	}

	if r.Storage == nil {
		return nil
	}
	switch r.Storage.Mode {
	case StorageWPPost:
		for key, tax := range r.Storage.Taxonomies {
			if tax.Taxonomy == "" {
				return errors.NewDescriptorInvalid(r.Name, fmt.Sprintf("taxonomy %q needs a taxonomy slug", key))
			}
		}
	case StorageWPTaxonomy:
		if r.Storage.Taxonomy == "" {
			return errors.NewDescriptorInvalid(r.Name, "wp-taxonomy storage needs a taxonomy")
		}
	case StorageWPOption:
		if r.Storage.Option == "" {
			return errors.NewDescriptorInvalid(r.Name, "wp-option storage needs an option name")
		}
	case StorageTransient:
	default:
		return errors.NewDescriptorInvalid(r.Name, fmt.Sprintf("unknown storage mode %q", r.Storage.Mode))
	}
	return nil
}

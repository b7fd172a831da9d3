package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML string

// catalogFile is the YAML authoring format
type catalogFile struct {
	Skills []skillFile `yaml:"skills"`
}

type skillFile struct {
	ID                   string       `yaml:"id"`
	Name                 string       `yaml:"name"`
	Tier                 int32        `yaml:"tier"`
	Cost                 int32        `yaml:"cost"`
	Ability              bool         `yaml:"ability"`
	Prerequisites        []string     `yaml:"prerequisites"`
	Effects              []effectFile `yaml:"effects"`
	Description          string       `yaml:"description"`
	OverwriteDescription bool         `yaml:"overwrite_description"`
}

type effectFile struct {
	Attribute  string `yaml:"attribute"`
	Amount     int32  `yaml:"amount"`
	Percentage bool   `yaml:"percentage"`
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultCatalogYAML))
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- operator supplied catalog path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog %s", path)
	}
	return c, nil
}

// Load parses a YAML catalog. Unknown keys and unknown attributes are
// rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.InvalidArgument("catalog is empty")
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}

	skills, err := file.toSkills()
	if err != nil {
		return nil, err
	}

	return New(skills)
}

func (f *catalogFile) toSkills() ([]*skilltree.Skill, error) {
	vb := errors.NewValidationBuilder()
	skills := make([]*skilltree.Skill, 0, len(f.Skills))

	for i, sf := range f.Skills {
		skill := &skilltree.Skill{
			ID:                   skilltree.SkillID(strings.TrimSpace(sf.ID)),
			Name:                 sf.Name,
			Tier:                 sf.Tier,
			Cost:                 sf.Cost,
			IsAbility:            sf.Ability,
			Description:          sf.Description,
			OverwriteDescription: sf.OverwriteDescription,
		}

		for _, p := range sf.Prerequisites {
			skill.Prerequisites = append(skill.Prerequisites, skilltree.SkillID(strings.TrimSpace(p)))
		}

		for j, ef := range sf.Effects {
			attr, err := skilltree.ParseAttribute(ef.Attribute)
			if err != nil {
				vb.Fieldf(fmt.Sprintf("skills[%d].effects[%d].attribute", i, j), "unknown attribute %q", ef.Attribute)
				continue
			}
			skill.Effects = append(skill.Effects, skilltree.StatEffect{
				Attribute:    attr,
				Amount:       ef.Amount,
				IsPercentage: ef.Percentage,
			})
		}

		skills = append(skills, skill)
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid skill catalog")
	}

	return skills, nil
}

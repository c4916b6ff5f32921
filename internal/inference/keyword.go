package inference

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/hsa-bills/internal/models"
)

// CategoryRule maps a category name to the keywords that indicate it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// categoryRulesFile is the structure of the rules YAML file.
type categoryRulesFile struct {
	Categories []CategoryRule `yaml:"categories"`
}

// KeywordCategorizer assigns a category to bill text by keyword matching.
// It is the offline fallback used when AI inference is disabled or returns
// no category. Matching is case-insensitive; rules are evaluated in file
// order and the first hit wins.
type KeywordCategorizer struct {
	rules []CategoryRule
}

// DefaultCategoryRules are used when no rules file is configured or found.
var DefaultCategoryRules = []CategoryRule{
	{Name: models.CategoryDental, Keywords: []string{"dental", "dentist", "orthodont", "oral surgery"}},
	{Name: models.CategoryVision, Keywords: []string{"vision", "optometr", "ophthalmolog", "eye exam", "glasses", "contact lens"}},
	{Name: models.CategoryPharmacy, Keywords: []string{"pharmacy", "prescription", "rx ", "drug store"}},
	{Name: models.CategoryMedical, Keywords: []string{"clinic", "hospital", "medical", "physician", "urgent care", "laboratory", "imaging", "radiology"}},
}

// NewKeywordCategorizer creates a categorizer from the given rules.
// Nil rules mean the defaults.
func NewKeywordCategorizer(rules []CategoryRule) *KeywordCategorizer {
	if rules == nil {
		rules = DefaultCategoryRules
	}
	return &KeywordCategorizer{rules: rules}
}

// NewKeywordCategorizerFromFile loads rules from a YAML file. A missing file
// is not an error: the defaults are used so first runs work out of the box.
func NewKeywordCategorizerFromFile(path string) (*KeywordCategorizer, error) {
	if path == "" {
		return NewKeywordCategorizer(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("rules_file", path).Debug("Category rules file not found, using defaults")
			return NewKeywordCategorizer(nil), nil
		}
		return nil, err
	}

	var file categoryRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Categories) == 0 {
		return NewKeywordCategorizer(nil), nil
	}

	return NewKeywordCategorizer(file.Categories), nil
}

// Categorize returns the first category whose keywords appear in the text,
// or an empty string when nothing matches.
func (k *KeywordCategorizer) Categorize(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range k.rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				return models.NormalizeCategory(rule.Name)
			}
		}
	}
	return ""
}

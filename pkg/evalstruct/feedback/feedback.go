// Package feedback assigns tier-based strengths, improvement areas and
// trainer feedback to employee reports.
package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/output"
	"gopkg.in/yaml.v3"
)

// Tier is one performance category and the feedback given to its members.
type Tier struct {
	Name                string   `yaml:"name"`
	Default             bool     `yaml:"default"`
	OverallPerformance  string   `yaml:"overall_performance"`
	Members             []string `yaml:"members"`
	KeyStrengths        []string `yaml:"key_strengths"`
	AreasForImprovement []string `yaml:"areas_for_improvement"`
	TrainersFeedback    []string `yaml:"trainers_feedback"`
}

// Tiers is the ordered tier table. Members listed in no tier fall into the
// default tier.
type Tiers struct {
	Tiers []Tier `yaml:"tiers"`
}

// ParseTiers decodes and validates a YAML tier table.
func ParseTiers(data []byte) (*Tiers, error) {
	var t Tiers
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tiers: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTiers reads a YAML tier table from path.
func LoadTiers(path string) (*Tiers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTiers(data)
}

// Validate checks that exactly one tier is the default, that tier names are
// unique and that nobody is listed in two tiers.
func (t *Tiers) Validate() error {
	if len(t.Tiers) == 0 {
		return errors.New("no tiers defined")
	}
	defaults := 0
	names := make(map[string]bool)
	owner := make(map[string]string)
	for _, tier := range t.Tiers {
		if tier.Name == "" {
			return errors.New("tier without name")
		}
		if names[tier.Name] {
			return fmt.Errorf("duplicate tier %q", tier.Name)
		}
		names[tier.Name] = true
		if tier.Default {
			defaults++
		}
		for _, m := range tier.Members {
			key := NormalizeName(m)
			if prev, ok := owner[key]; ok {
				return fmt.Errorf("%q is listed in tiers %q and %q", m, prev, tier.Name)
			}
			owner[key] = tier.Name
		}
	}
	if defaults != 1 {
		return fmt.Errorf("exactly one default tier required, found %d", defaults)
	}
	return nil
}

// NormalizeName lowercases and trims a name for comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Match returns the tier of an employee.
func (t *Tiers) Match(employee string) *Tier {
	key := NormalizeName(employee)
	var def *Tier
	for i := range t.Tiers {
		tier := &t.Tiers[i]
		if tier.Default {
			def = tier
		}
		for _, m := range tier.Members {
			if NormalizeName(m) == key {
				return tier
			}
		}
	}
	return def
}

// Apply writes the tier feedback into rep and returns the tier used.
func Apply(rep *models.EmployeeReport, tiers *Tiers) *Tier {
	tier := tiers.Match(rep.EmployeeName)
	if tier == nil {
		return nil
	}
	if tier.OverallPerformance != "" {
		rep.MonthlyEvaluation.OverallPerformance = tier.OverallPerformance
	}
	rep.MonthlyEvaluation.KeyStrengths = nonNil(tier.KeyStrengths)
	rep.MonthlyEvaluation.AreasForImprovement = nonNil(tier.AreasForImprovement)
	rep.TrainersFeedback = nonNil(tier.TrainersFeedback)
	return tier
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

// Summary lists who ended up in which tier.
type Summary struct {
	// Members maps tier name to the employee names assigned to it.
	Members map[string][]string
	// Failed lists the report files that could not be updated.
	Failed []string
}

// UpdateDir applies the tiers to every report JSON in dir and rewrites the
// files. A broken file is logged and listed in Summary.Failed.
func UpdateDir(dir string, tiers *Tiers, log *slog.Logger) (*Summary, error) {
	if log == nil {
		log = slog.Default()
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	summary := &Summary{Members: make(map[string][]string)}
	for _, path := range files {
		name, tier, err := UpdateFile(path, tiers)
		if err != nil {
			log.Error("Could not update report", slog.String("file", filepath.Base(path)), slog.Any("error", err))
			summary.Failed = append(summary.Failed, path)
			continue
		}
		summary.Members[tier] = append(summary.Members[tier], name)
		log.Info("Report updated", slog.String("employee", name), slog.String("tier", tier))
	}
	for _, names := range summary.Members {
		sort.Strings(names)
	}
	return summary, nil
}

// UpdateFile applies the tiers to one report file and returns the employee
// name and tier name.
func UpdateFile(path string, tiers *Tiers) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	var rep models.EmployeeReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return "", "", fmt.Errorf("failed to decode report: %w", err)
	}
	if rep.EmployeeName == "" {
		rep.EmployeeName = "Unknown"
	}
	tier := Apply(&rep, tiers)
	if tier == nil {
		return "", "", errors.New("no tier matched")
	}
	out, err := output.ToJSONIndent(rep, "  ")
	if err != nil {
		return "", "", err
	}
	if err := output.WriteFileAtomic(path, out, 0644); err != nil {
		return "", "", err
	}
	return rep.EmployeeName, tier.Name, nil
}

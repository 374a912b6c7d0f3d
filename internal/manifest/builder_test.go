package manifest_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-zwavegen/internal/manifest"
	"github.com/goliatone/go-zwavegen/pkg/registry"
	"github.com/goliatone/go-zwavegen/pkg/testsupport"
)

type document struct {
	ZWave    manifest.Fragment  `json:"zwave"`
	Settings []manifest.Setting `json:"settings"`
}

func TestBuilder_ProductRecord(t *testing.T) {
	record := testsupport.LoadRecord(t, filepath.Join("testdata", "product_record.json"))

	fragment := manifest.New(manifest.Options{}).Build(record)

	goldenPath := filepath.Join("testdata", "product_manifest.golden.json")
	got := document{ZWave: fragment, Settings: fragment.Settings}
	testsupport.WriteGolden(t, goldenPath, got)

	if diff := testsupport.CompareJSON(t, testsupport.MustReadGolden(t, goldenPath), got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	kinds := make([]string, 0, len(fragment.Settings))
	for _, setting := range fragment.Settings {
		kinds = append(kinds, setting.Kind.Type())
	}
	if diff := cmp.Diff([]string{manifest.TypeCheckbox, manifest.TypeDropdown, manifest.TypeNumber}, kinds); diff != "" {
		t.Fatalf("kind order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Idempotent(t *testing.T) {
	record := testsupport.LoadRecord(t, filepath.Join("testdata", "product_record.json"))
	builder := manifest.New(manifest.Options{})

	encode := func() []byte {
		fragment := builder.Build(record)
		payload, err := json.Marshal(document{ZWave: fragment, Settings: fragment.Settings})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return payload
	}

	first, second := encode(), encode()
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output across runs:\n%s\n%s", first, second)
	}
}

func TestBuilder_EmptyRecord(t *testing.T) {
	fragment, report := manifest.New(manifest.Options{}).BuildWithReport(registry.Record{})

	if fragment.Settings == nil || len(fragment.Settings) != 0 {
		t.Fatalf("expected empty, non-nil settings, got %#v", fragment.Settings)
	}
	if len(report.Skipped) != 0 {
		t.Fatalf("expected no skipped parameters")
	}
	if fragment.LearnMode != nil || fragment.UnlearnMode != nil {
		t.Fatalf("expected no instructions for an empty record")
	}
	if fragment.AssociationGroups != nil || fragment.AssociationGroupsOptions != nil {
		t.Fatalf("expected no association groups for an empty record")
	}
	if fragment.ManufacturerID != nil {
		t.Fatalf("expected manufacturer id to be omitted")
	}

	payload, err := json.Marshal(fragment)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != "{}" {
		t.Fatalf("expected empty zwave object, got %s", payload)
	}
}

func TestBuilder_Instructions(t *testing.T) {
	record := registry.Record{
		InclusionDescription: registry.NewValue("Triple click"),
		ExclusionDescription: registry.NewValue("Hold 5s"),
	}

	fragment := manifest.New(manifest.Options{Locale: "nl"}).Build(record)

	want := &manifest.Instruction{Instruction: manifest.LocalizedText{"nl": "Triple click"}}
	if diff := cmp.Diff(want, fragment.LearnMode); diff != "" {
		t.Fatalf("learnmode mismatch (-want +got):\n%s", diff)
	}
	want = &manifest.Instruction{Instruction: manifest.LocalizedText{"nl": "Hold 5s"}}
	if diff := cmp.Diff(want, fragment.UnlearnMode); diff != "" {
		t.Fatalf("unlearnmode mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_AssociationGroups(t *testing.T) {
	group := func(number any, description any) *registry.AssociationGroup {
		g := &registry.AssociationGroup{GroupNumber: registry.NewValue(number)}
		if description != nil {
			g.Description = registry.NewValue(description)
		}
		return g
	}

	record := registry.Record{
		AssociationGroups: registry.List[registry.AssociationGroup]{
			group("01", "Lifeline"),
			group("lifeline", "dropped"),
			nil,
			group(2, nil),
			group("2", "Basic set"),
		},
	}

	fragment := manifest.New(manifest.Options{}).Build(record)

	if diff := cmp.Diff([]int64{1, 2, 2}, fragment.AssociationGroups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	wantOptions := map[string]manifest.GroupOptions{
		"01": {Hint: manifest.LocalizedText{"en": "Lifeline"}},
		"2":  {Hint: manifest.LocalizedText{"en": "Basic set"}},
	}
	if diff := cmp.Diff(wantOptions, fragment.AssociationGroupsOptions); diff != "" {
		t.Fatalf("group options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_GroupNumberBase(t *testing.T) {
	record := registry.Record{
		AssociationGroups: registry.List[registry.AssociationGroup]{
			{GroupNumber: registry.NewValue("10")},
			{GroupNumber: registry.NewValue("3")},
		},
	}

	decimal := manifest.New(manifest.Options{}).Build(record)
	if diff := cmp.Diff([]int64{10, 3}, decimal.AssociationGroups); diff != "" {
		t.Fatalf("decimal mismatch (-want +got):\n%s", diff)
	}

	binary := manifest.New(manifest.Options{GroupNumberBase: 2}).Build(record)
	if diff := cmp.Diff([]int64{2}, binary.AssociationGroups); diff != "" {
		t.Fatalf("binary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Sanitizer(t *testing.T) {
	record := registry.Record{
		InclusionDescription: registry.NewValue("  <b>press</b>  "),
		ExclusionDescription: registry.NewValue("   "),
		ConfigurationParameters: registry.List[registry.ConfigurationParameter]{
			{
				ParameterNumber: registry.NewValue(1),
				Name:            registry.NewValue(" Name "),
			},
		},
	}

	builder := manifest.New(manifest.Options{Sanitizer: strings.TrimSpace})
	fragment := builder.Build(record)

	if got := fragment.LearnMode.Instruction["en"]; got != "<b>press</b>" {
		t.Fatalf("expected sanitizer to run on instructions, got %q", got)
	}
	if fragment.UnlearnMode != nil {
		t.Fatalf("expected instruction that sanitizes to empty to be dropped")
	}
	if got := fragment.Settings[0].Label["en"]; got != "Name" {
		t.Fatalf("expected sanitized label, got %q", got)
	}
	if got := fragment.Settings[0].Hint["en"]; got != "" {
		t.Fatalf("expected empty hint, got %q", got)
	}
}

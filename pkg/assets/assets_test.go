package assets_test

import (
	"testing"

	"github.com/goliatone/go-zwavegen/pkg/assets"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

func TestImageURL(t *testing.T) {
	cases := map[string]struct {
		record  registry.Record
		pattern string
		want    string
	}{
		"record image wins": {
			record: registry.Record{
				Image:               registry.NewValue("https://cdn.example.test/p.jpg"),
				CertificationNumber: registry.NewValue("ZC10-1"),
			},
			want: "https://cdn.example.test/p.jpg",
		},
		"certification fallback": {
			record: registry.Record{
				Image:               registry.NewValue(""),
				CertificationNumber: registry.NewValue("ZC10 1"),
			},
			want: "https://products.z-wavealliance.org/ProductImages/Index?productName=ZC10+1",
		},
		"custom pattern": {
			record:  registry.Record{CertificationNumber: registry.NewValue("ZC10-1")},
			pattern: "http://mirror.test/img/%s",
			want:    "http://mirror.test/img/ZC10-1",
		},
		"nothing to fetch": {
			record: registry.Record{},
			want:   "",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := assets.ImageURL(tc.record, tc.pattern); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

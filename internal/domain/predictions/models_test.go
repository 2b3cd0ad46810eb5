package predictions

import (
	"reflect"
	"testing"
)

func TestNewTeamDescriptorTrimsAndDropsEmpty(t *testing.T) {
	d := NewTeamDescriptor("  Houston Texans ", "", "   ", "Texans")
	want := []string{"Houston Texans", "Texans"}
	if !reflect.DeepEqual(d.Synonyms, want) {
		t.Fatalf("expected %v, got %v", want, d.Synonyms)
	}
	if d.Label() != "Houston Texans" {
		t.Fatalf("expected first synonym as label, got %q", d.Label())
	}
}

func TestParseTeamDescriptorSplitsOnComma(t *testing.T) {
	d := ParseTeamDescriptor("San Francisco 49ers, 49ers,,SF")
	want := []string{"San Francisco 49ers", "49ers", "SF"}
	if !reflect.DeepEqual(d.Synonyms, want) {
		t.Fatalf("expected %v, got %v", want, d.Synonyms)
	}
}

func TestLabelEmptyDescriptor(t *testing.T) {
	if got := (TeamDescriptor{}).Label(); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}

func TestAmbiguousVerdict(t *testing.T) {
	v := Ambiguous()
	if v.Side != SideAmbiguous || v.Method != MethodNone || v.Phrase != "" {
		t.Fatalf("unexpected ambiguous verdict %+v", v)
	}
}

func TestSourceRowJSONTags(t *testing.T) {
	rowType := reflect.TypeOf(SourceRow{})
	expected := map[string]string{
		"Published":   "published_utc",
		"Domain":      "domain",
		"Site":        "site,omitempty",
		"URL":         "url",
		"ResultTitle": "result_title",
		"PageTitle":   "page_title",
		"Snippet":     "snippet",
		"Winner":      "winner",
		"Method":      "winner_method",
		"Phrase":      "match_phrase",
	}
	for name, tag := range expected {
		f, ok := rowType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Fatalf("field %s: expected tag %q, got %q", name, tag, got)
		}
	}
}

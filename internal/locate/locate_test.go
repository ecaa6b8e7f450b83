package locate

import (
	"testing"

	"github.com/dgallion1/repricer/internal/dom"
)

func mustParse(t *testing.T, src string) *dom.Node {
	t.Helper()
	root, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func findTag(nd *dom.Node, tag string) *dom.Node {
	for _, c := range nd.ElementChildren() {
		if c.Tag() == tag {
			return c
		}
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestFind_NoMatchesIsEmpty(t *testing.T) {
	root := mustParse(t, "<p>no prices here</p>")
	if got := Find(root, '$', 0); len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}

func TestFind_SelectsMostSpecificContainer(t *testing.T) {
	// Parent and child hold the same single occurrence; the child is the
	// more specific container and replaces the parent.
	root := mustParse(t, "<p>Total: <span>$5.00</span></p>")
	got := Find(root, '$', 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Node.Tag() != "span" {
		t.Errorf("expected span candidate, got <%s>", got[0].Node.Tag())
	}
	if got[0].Count != 1 {
		t.Errorf("expected count 1, got %d", got[0].Count)
	}
}

func TestFind_SkipsSubtreeWhenParentSpansMore(t *testing.T) {
	// The parent covers two amounts, the child only one; the parent stays
	// authoritative and the child is excluded.
	root := mustParse(t, "<p>$5.00 and <span>$3.00</span></p>")
	got := Find(root, '$', 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Node.Tag() != "p" {
		t.Errorf("expected p candidate, got <%s>", got[0].Node.Tag())
	}
	if got[0].Count != 2 {
		t.Errorf("expected count 2, got %d", got[0].Count)
	}
}

func TestFind_SiblingCandidatesInDocumentOrder(t *testing.T) {
	root := mustParse(t, "<p>$1.00</p><p>$2.00</p><p>$3.00</p>")
	body := findTag(root, "body")
	got := Find(body, '$', 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	want := []string{"$1.00", "$2.00", "$3.00"}
	for i, w := range want {
		if text := got[i].Node.Text(); text != w {
			t.Errorf("candidate[%d]: expected text %q, got %q", i, w, text)
		}
	}
}

func TestFind_LimitCapsCandidates(t *testing.T) {
	root := mustParse(t, "<p>$1.00</p><p>$2.00</p><p>$3.00</p>")
	body := findTag(root, "body")
	got := Find(body, '$', 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Node.Text() != "$1.00" || got[1].Node.Text() != "$2.00" {
		t.Errorf("expected the first two paragraphs, got %q and %q",
			got[0].Node.Text(), got[1].Node.Text())
	}
}

func TestFind_DeepChainDrillsToLeaf(t *testing.T) {
	// Equal counts all the way down: each level replaces its parent until
	// the innermost container remains.
	root := mustParse(t, "<div><p><span><em>$9.99</em></span></p></div>")
	got := Find(root, '$', 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Node.Tag() != "em" {
		t.Errorf("expected em candidate, got <%s>", got[0].Node.Tag())
	}
}

func TestFind_AlternateMarker(t *testing.T) {
	root := mustParse(t, "<p>#5.00 and $3.00</p>")
	got := Find(root, '#', 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Count != 1 {
		t.Errorf("expected count 1 for '#', got %d", got[0].Count)
	}
}

func TestFind_RootItselfIsNotACandidate(t *testing.T) {
	root := mustParse(t, "<p>$5.00</p>")
	p := findTag(root, "p")
	// p's text matches, but Find scans descendants only; p has no element
	// children, so nothing is found below it.
	if got := Find(p, '$', 0); len(got) != 0 {
		t.Errorf("expected no candidates below a leaf root, got %d", len(got))
	}
}

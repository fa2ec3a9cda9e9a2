package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusCompleted, StatusRejected} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "all", "archived", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	if !TerminalStatus(StatusCompleted) || !TerminalStatus(StatusRejected) {
		t.Errorf("completed/rejected must be terminal")
	}
	if TerminalStatus(StatusPending) || TerminalStatus(StatusProcessing) {
		t.Errorf("pending/processing must not be terminal")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	var req ServiceRequest
	docs := []RequestDocument{
		{Label: "KTP lama", OriginalFilename: "ktp.pdf", StoredPath: "abc.pdf"},
		{Label: "KK"},
	}
	if err := req.SetDocuments(docs); err != nil {
		t.Fatalf("SetDocuments: %v", err)
	}

	got := req.DocumentList()
	if len(got) != 2 || got[0] != docs[0] || got[1] != docs[1] {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestDocumentList_ToleratesBadColumn(t *testing.T) {
	for _, raw := range []string{"", "not-json", "{}"} {
		req := ServiceRequest{Documents: raw}
		if got := req.DocumentList(); got == nil || len(got) != 0 {
			t.Errorf("DocumentList(%q) = %#v, want empty slice", raw, got)
		}
	}
}

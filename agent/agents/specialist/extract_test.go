package specialist

import "testing"

func TestExtractJSONPayloadBareObject(t *testing.T) {
	t.Parallel()

	raw := `{"city":"Hangzhou","days":[]}`
	out, err := ExtractJSONPayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != raw {
		t.Fatalf("expected passthrough, got %q", out)
	}
}

func TestExtractJSONPayloadIdempotentAcrossFencing(t *testing.T) {
	t.Parallel()

	bare := `{"city":"Hangzhou"}`
	fenced := "```json\n" + bare + "\n```"

	fromBare, err := ExtractJSONPayload(bare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromFenced, err := ExtractJSONPayload(fenced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromBare != fromFenced {
		t.Fatalf("extraction differs: %q vs %q", fromBare, fromFenced)
	}
}

func TestExtractJSONPayloadPrefersJSONFence(t *testing.T) {
	t.Parallel()

	raw := "```\n{\"wrong\":true}\n```\nsome prose\n```json\n{\"right\":true}\n```"
	out, err := ExtractJSONPayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"right":true}` {
		t.Fatalf("expected json fence to win, got %q", out)
	}
}

func TestExtractJSONPayloadFirstJSONFenceWins(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"first\":1}\n```\n```json\n{\"second\":2}\n```"
	out, err := ExtractJSONPayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"first":1}` {
		t.Fatalf("expected first fence, got %q", out)
	}
}

func TestExtractJSONPayloadGenericFence(t *testing.T) {
	t.Parallel()

	raw := "Here is the plan:\n```\n{\"city\":\"Tokyo\"}\n```"
	out, err := ExtractJSONPayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"city":"Tokyo"}` {
		t.Fatalf("unexpected payload: %q", out)
	}
}

func TestExtractJSONPayloadOutermostBraces(t *testing.T) {
	t.Parallel()

	raw := `The plan is {"outer":{"inner":1}} as requested.`
	out, err := ExtractJSONPayload(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"outer":{"inner":1}}` {
		t.Fatalf("expected outermost span, got %q", out)
	}
}

func TestExtractJSONPayloadNoPayload(t *testing.T) {
	t.Parallel()

	if _, err := ExtractJSONPayload("sorry, I cannot help with that"); err == nil {
		t.Fatal("expected error for prose-only output")
	}
}

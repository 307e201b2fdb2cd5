package raw

import "testing"

func TestGetPrefixAndTrim(t *testing.T) {
	t.Setenv("APP_NAME", " rinkbot ")
	t.Setenv("BOT_SUBREDDIT", " hockey ")

	root := New()
	bot := root.Prefix("BOT_")

	if got := root.Get("APP_NAME", "x"); got != "rinkbot" {
		t.Fatalf("root get: got %q", got)
	}
	if got := bot.Get("SUBREDDIT", "x"); got != "hockey" {
		t.Fatalf("prefixed get: got %q", got)
	}
	if got := bot.Get("MISSING", "defv"); got != "defv" {
		t.Fatalf("default: got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("F_YES", "yes")
	t.Setenv("F_ONE", "1")
	t.Setenv("F_NO", "no")

	c := New().Prefix("F_")
	if !c.GetBool("YES", false) || !c.GetBool("ONE", false) {
		t.Fatalf("truthy values should parse true")
	}
	if c.GetBool("NO", true) {
		t.Fatalf("'no' should parse false")
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("missing should fall back to default")
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("N_OK", "1024")
	t.Setenv("N_BAD", "10x")

	c := New().Prefix("N_")
	if got := c.GetInt("OK", 7); got != 1024 {
		t.Fatalf("got %d", got)
	}
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("non-numeric should default, got %d", got)
	}
	if got := c.GetInt("MISSING", 7); got != 7 {
		t.Fatalf("missing should default, got %d", got)
	}
}

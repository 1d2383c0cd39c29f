package checklist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/auditnotes/pkg/core"
)

func sample() *core.Collection {
	c := core.NewCollection()
	c.Append("/proj/src/Vault.sol", "src/Vault.sol", core.Note{Line: 3, Content: "@audit reentrancy risk", Kind: core.KindNote})
	c.Append("/proj/src/Vault.sol", "src/Vault.sol", core.Note{Line: 10, Content: "TODO: fix bounds check", Kind: core.KindTodo, Checked: true})
	c.Append("/proj/app dir/main (v2).ts", "app dir/main (v2).ts", core.Note{Line: 1, Content: "TODO [link](x): weird: text", Kind: core.KindTodo})
	return c
}

func TestEncode_Format(t *testing.T) {
	c := core.NewCollection()
	c.Append("/proj/a.ts", "a.ts", core.Note{Line: 1, Content: "TODO: one", Kind: core.KindTodo})
	c.Append("/proj/a.ts", "a.ts", core.Note{Line: 4, Content: "@note two", Kind: core.KindNote, Checked: true})

	want := "# Audit Notes\n\n" +
		"## File: [a.ts](file:///proj/a.ts)\n\n" +
		"- [ ] [Line 1](file:///proj/a.ts#1): TODO: one\n\n" +
		"- [x] [Line 4](file:///proj/a.ts#4): @note two\n\n"
	assert.Equal(t, want, Encode(c))
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "# Audit Notes\n\n", Encode(core.NewCollection()))
	assert.Equal(t, "# Audit Notes\n\n", Encode(nil))
}

type tuple struct {
	file    string
	line    int
	content string
	checked bool
}

func tuples(c *core.Collection) []tuple {
	var out []tuple
	for _, f := range c.Files() {
		for _, n := range f.Notes {
			out = append(out, tuple{f.Identity, n.Line, n.Content, n.Checked})
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	in := sample()

	out, err := Decode(Encode(in))
	require.NoError(t, err)

	assert.Equal(t, tuples(in), tuples(out))
	for i, f := range out.Files() {
		assert.Equal(t, in.Files()[i].Display, f.Display)
	}
}

func TestDecode(t *testing.T) {
	t.Run("Checkbox Variants", func(t *testing.T) {
		doc := "## File: [a.ts](file:///p/a.ts)\n" +
			"- [X] [Line 2](file:///p/a.ts#2): TODO upper\n" +
			"- [x] [Line 3](file:///p/a.ts#3): TODO lower\n" +
			"- [ ] [Line 4](file:///p/a.ts#4): TODO open\n"
		c, err := Decode(doc)
		require.NoError(t, err)

		entry, ok := c.Get("/p/a.ts")
		require.True(t, ok)
		require.Len(t, entry.Notes, 3)
		assert.True(t, entry.Notes[0].Checked)
		assert.True(t, entry.Notes[1].Checked)
		assert.False(t, entry.Notes[2].Checked)
		assert.Equal(t, core.KindNote, entry.Notes[0].Kind)
	})

	t.Run("Note Before Header Dropped", func(t *testing.T) {
		doc := "# Audit Notes\n\n- [x] [Line 1](file:///p/a.ts#1): TODO orphan\n\n## File: [b.ts](file:///p/b.ts)\n\n- [ ] [Line 2](file:///p/b.ts#2): TODO kept\n"
		c, err := Decode(doc)
		require.NoError(t, err)

		assert.Equal(t, []tuple{{"/p/b.ts", 2, "TODO kept", false}}, tuples(c))
	})

	t.Run("Commentary Ignored", func(t *testing.T) {
		doc := "# Audit Notes\n\nSome words I added.\n\n## File: [a.ts](file:///p/a.ts)\n\n* random bullet\n- [ ] [Line 1](file:///p/a.ts#1): TODO a\n"
		c, err := Decode(doc)
		require.NoError(t, err)
		assert.Equal(t, 1, c.NoteCount())
	})

	t.Run("Legacy Lines Without Checkbox", func(t *testing.T) {
		doc := "## File: [a.ts](vscode://file//p/a.ts)\n\n- [Line 7](vscode://file//p/a.ts:7): @audit legacy\n"
		c, err := Decode(doc)
		require.NoError(t, err)

		entry, ok := c.Get("vscode://file//p/a.ts")
		require.True(t, ok, "non file locators are kept verbatim")
		assert.Equal(t, []core.Note{{Line: 7, Content: "@audit legacy", Kind: core.KindNote}}, entry.Notes)
	})

	t.Run("Header Without Notes Absent", func(t *testing.T) {
		c, err := Decode("# Audit Notes\n\n## File: [a.ts](file:///p/a.ts)\n\n")
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("Empty Document", func(t *testing.T) {
		for _, doc := range []string{"", "\n\n", "# Audit Notes\n\n"} {
			c, err := Decode(doc)
			require.NoError(t, err)
			assert.Equal(t, 0, c.Len())
		}
	})

	t.Run("Malformed Degrades", func(t *testing.T) {
		c, err := Decode("totally unrelated\ncontent\n")
		assert.ErrorIs(t, err, core.ErrMalformedDocument)
		require.NotNil(t, c)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("CRLF", func(t *testing.T) {
		doc := strings.ReplaceAll(Encode(sample()), "\n", "\r\n")
		c, err := Decode(doc)
		require.NoError(t, err)
		assert.Equal(t, tuples(sample()), tuples(c))
	})
}

func TestLocator(t *testing.T) {
	tests := []struct {
		identity string
		locator  string
	}{
		{"/p/a.ts", "file:///p/a.ts"},
		{"/p/with space/a#b.ts", "file:///p/with%20space/a%23b.ts"},
		{"rel/a.ts", "rel/a.ts"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.locator, Locator(tc.identity))
		assert.Equal(t, tc.identity, Identity(tc.locator))
	}
}

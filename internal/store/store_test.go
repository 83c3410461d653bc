package store_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diddir/internal/config"
	"diddir/internal/perm"
	"diddir/internal/store"
)

const (
	chadPKID  = "c506310b2c1ceb27212c4478055a44ac6b26969af73da0828bf28fc4867f09bb"
	stacyPKID = "8b69351b707a187559ef7e87d898430dc016680c52b36e23d8703a2e030b30dd"
	chadDoc   = "{\n  \"name\": \"Chad Smith\"\n}\n"
	stacyDoc  = "{\n  \"name\": \"Stacy Jones\"\n}\n"
)

// newFixture lays out a populated store on disk the way another process
// would have left it: two identities, three aliases, strict modes.
func newFixture(t *testing.T) config.Paths {
	t.Helper()
	p := config.PathsFrom(t.TempDir())

	for _, d := range []string{p.RootDir(), p.AliasesDir(), p.TmpDir()} {
		require.NoError(t, os.MkdirAll(d, perm.DirMode))
	}
	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), perm.FileMode))
	}
	write(filepath.Join(p.RootDir(), chadPKID), chadDoc)
	write(filepath.Join(p.RootDir(), stacyPKID), stacyDoc)
	write(filepath.Join(p.AliasesDir(), "default"), chadPKID+"\n")
	write(filepath.Join(p.AliasesDir(), "chad.smith@no.email"), chadPKID)
	write(filepath.Join(p.AliasesDir(), "stacy.jones@no.email"), "  "+stacyPKID+"\n")

	require.NoError(t, perm.SetTree(perm.Default(), p.RootDir()))
	return p
}

func newEmpty(t *testing.T, opts ...store.Option) (*store.Store, config.Paths) {
	t.Helper()
	p := config.PathsFrom(filepath.Join(t.TempDir(), "diddir"))
	s, err := store.Init(p, opts...)
	require.NoError(t, err)
	return s, p
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func tmpEntries(t *testing.T, p config.Paths) []string {
	t.Helper()
	entries, err := os.ReadDir(p.TmpDir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestInit_CreatesDirectories(t *testing.T) {
	s, p := newEmpty(t)

	for _, d := range []string{p.RootDir(), p.AliasesDir(), p.TmpDir()} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		require.NoError(t, perm.Default().CheckStrict(d))
	}
	_, ok := s.GetIdentities()
	assert.False(t, ok)
}

func TestInit_AdoptsEmptyDirectory(t *testing.T) {
	p := config.PathsFrom(t.TempDir())
	_, err := store.Init(p)
	require.NoError(t, err)
	assert.True(t, exists(p.AliasesDir()))
}

func TestInit_NonEmptyDirectoryFails(t *testing.T) {
	p := newFixture(t)
	_, err := store.Init(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))

	// nothing was touched
	assert.True(t, exists(filepath.Join(p.RootDir(), chadPKID)))
}

func TestOpen_MissingDirectory(t *testing.T) {
	p := config.PathsFrom(filepath.Join(t.TempDir(), "nope"))
	_, err := store.Open(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestOpen_PartialLayout(t *testing.T) {
	p := newFixture(t)
	require.NoError(t, os.RemoveAll(p.TmpDir()))

	_, err := store.Open(p)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestOpen_Fixture(t *testing.T) {
	p := newFixture(t)
	s, err := store.Open(p)
	require.NoError(t, err)

	id, err := s.GetPKIDFromAlias("default")
	require.NoError(t, err)
	assert.Equal(t, chadPKID, id)

	aliases, ok := s.GetAliases(chadPKID)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"default", "chad.smith@no.email"}, aliases)

	id, err = s.GetPKIDFromAlias("stacy.jones@no.email")
	require.NoError(t, err)
	assert.Equal(t, stacyPKID, id, "alias content is trimmed")

	ids, ok := s.GetIdentities()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{chadPKID, stacyPKID}, ids)

	doc, err := s.GetIdentity(chadPKID)
	require.NoError(t, err)
	assert.Equal(t, chadDoc, doc)
}

func TestOpen_SkipsSubdirectories(t *testing.T) {
	p := newFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(p.AliasesDir(), "nested"), perm.DirMode))

	s, err := store.Open(p)
	require.NoError(t, err)

	ids, _ := s.GetIdentities()
	assert.NotContains(t, ids, "aliases")
	assert.NotContains(t, ids, "tmp")
	_, err = s.GetPKIDFromAlias("nested")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestOpenOrInit(t *testing.T) {
	p := config.PathsFrom(filepath.Join(t.TempDir(), "diddir"))

	s, err := store.OpenOrInit(p)
	require.NoError(t, err)
	require.NoError(t, s.SaveIdentity("id1", "DOC1"))

	s, err = store.OpenOrInit(p)
	require.NoError(t, err)
	doc, err := s.GetIdentity("id1")
	require.NoError(t, err)
	assert.Equal(t, "DOC1", doc)
}

func TestOpenOrInit_Fixture(t *testing.T) {
	p := newFixture(t)
	s, err := store.OpenOrInit(p)
	require.NoError(t, err)
	ids, _ := s.GetIdentities()
	assert.Len(t, ids, 2)
}

func TestSaveIdentity_RoundTrip(t *testing.T) {
	s, p := newEmpty(t)

	for i, doc := range []string{"", "DOC1", "{\n  \"name\": \"Becky Adams\"\n}", "  padded\n\n", "ünïcödé ✓"} {
		pkid := fmt.Sprintf("id%d", i)
		require.NoError(t, s.SaveIdentity(pkid, doc))

		got, err := s.GetIdentity(pkid)
		require.NoError(t, err)
		assert.Equal(t, doc, got)

		require.NoError(t, perm.Default().CheckStrict(filepath.Join(p.RootDir(), pkid)))
	}
	assert.Empty(t, tmpEntries(t, p), "staged files are renamed out of tmp")
}

func TestSaveIdentity_Overwrites(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.SaveIdentity("id1", "v1"))
	require.NoError(t, s.SaveIdentity("id1", "v2"))

	got, err := s.GetIdentity("id1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
	ids, _ := s.GetIdentities()
	assert.Equal(t, []string{"id1"}, ids)
}

func TestGetIdentity_NotFound(t *testing.T) {
	s, _ := newEmpty(t)
	_, err := s.GetIdentity("missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSaveAlias_Resolves(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.SaveAlias("work", "id9"))

	id, err := s.GetPKIDFromAlias("work")
	require.NoError(t, err)
	assert.Equal(t, "id9", id)

	aliases, ok := s.GetAliases("id9")
	require.True(t, ok)
	assert.Contains(t, aliases, "work")
}

func TestSaveAlias_Moves(t *testing.T) {
	s, p := newEmpty(t)
	require.NoError(t, s.SaveAlias("a", "p1"))
	require.NoError(t, s.SaveAlias("a", "p2"))

	entries, err := os.ReadDir(p.AliasesDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	b, err := os.ReadFile(filepath.Join(p.AliasesDir(), "a"))
	require.NoError(t, err)
	assert.Equal(t, "p2", string(b))

	_, ok := s.GetAliases("p1")
	assert.False(t, ok)
	id, err := s.GetPKIDFromAlias("a")
	require.NoError(t, err)
	assert.Equal(t, "p2", id)
}

func TestRemoveAlias(t *testing.T) {
	p := newFixture(t)
	s, err := store.Open(p)
	require.NoError(t, err)

	require.NoError(t, s.RemoveAlias("default"))

	_, err = s.GetPKIDFromAlias("default")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	aliases, ok := s.GetAliases(chadPKID)
	require.True(t, ok)
	assert.Equal(t, []string{"chad.smith@no.email"}, aliases)
	assert.False(t, exists(filepath.Join(p.AliasesDir(), "default")))
	assert.Empty(t, tmpEntries(t, p))
}

func TestRemove_Missing(t *testing.T) {
	s, _ := newEmpty(t)

	err := s.RemoveAlias("nope")
	assert.True(t, errors.Is(err, store.ErrNoEntry))
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = s.RemoveIdentity("nope")
	assert.True(t, errors.Is(err, store.ErrNoEntry))
}

func TestRemoveIdentity_Cascades(t *testing.T) {
	p := newFixture(t)
	s, err := store.Open(p)
	require.NoError(t, err)

	require.NoError(t, s.RemoveIdentity(chadPKID))

	_, err = s.GetIdentity(chadPKID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	for _, a := range []string{"default", "chad.smith@no.email"} {
		_, err = s.GetPKIDFromAlias(a)
		assert.True(t, errors.Is(err, store.ErrNotFound), a)
		assert.False(t, exists(filepath.Join(p.AliasesDir(), a)))
	}
	assert.False(t, exists(filepath.Join(p.RootDir(), chadPKID)))
	_, ok := s.GetAliases(chadPKID)
	assert.False(t, ok)

	// stacy is untouched
	ids, ok := s.GetIdentities()
	require.True(t, ok)
	assert.Equal(t, []string{stacyPKID}, ids)
	id, err := s.GetPKIDFromAlias("stacy.jones@no.email")
	require.NoError(t, err)
	assert.Equal(t, stacyPKID, id)
	assert.Empty(t, tmpEntries(t, p))
}

func TestRemoveIdentity_ChecksDiskNotIndex(t *testing.T) {
	p := newFixture(t)
	s, err := store.Open(p)
	require.NoError(t, err)

	// another process removes the file; the stale index still lists it
	require.NoError(t, os.Remove(filepath.Join(p.RootDir(), stacyPKID)))
	ids, _ := s.GetIdentities()
	assert.Contains(t, ids, stacyPKID)

	err = s.RemoveIdentity(stacyPKID)
	assert.True(t, errors.Is(err, store.ErrNoEntry))
	// the alias is still there because the cascade never ran
	assert.True(t, exists(filepath.Join(p.AliasesDir(), "stacy.jones@no.email")))
}

func TestRemoveIdentity_RefusesDirectories(t *testing.T) {
	s, p := newEmpty(t)
	err := s.RemoveIdentity("aliases")
	assert.True(t, errors.Is(err, store.ErrNoEntry))
	assert.True(t, exists(p.AliasesDir()))
}

func TestScenario(t *testing.T) {
	s, _ := newEmpty(t)

	require.NoError(t, s.SaveIdentity("id1", "DOC1"))
	require.NoError(t, s.SaveAlias("default", "id1"))

	ids, ok := s.GetIdentities()
	require.True(t, ok)
	assert.Equal(t, []string{"id1"}, ids)
	aliases, ok := s.GetAliases("id1")
	require.True(t, ok)
	assert.Equal(t, []string{"default"}, aliases)
	id, err := s.GetPKIDFromAlias("default")
	require.NoError(t, err)
	assert.Equal(t, "id1", id)

	require.NoError(t, s.RemoveIdentity("id1"))

	_, ok = s.GetIdentities()
	assert.False(t, ok)
	_, err = s.GetPKIDFromAlias("default")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestReadsDoNotReload(t *testing.T) {
	s, p := newEmpty(t)
	require.NoError(t, s.SaveIdentity("id1", "DOC1"))

	// written behind the store's back
	require.NoError(t, os.WriteFile(filepath.Join(p.RootDir(), "id2"), []byte("DOC2"), perm.FileMode))
	_, err := s.GetIdentity("id2")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	// the next mutation rescans
	require.NoError(t, s.SaveAlias("x", "id1"))
	got, err := s.GetIdentity("id2")
	require.NoError(t, err)
	assert.Equal(t, "DOC2", got)

	require.NoError(t, os.Remove(filepath.Join(p.RootDir(), "id2")))
	require.NoError(t, s.Reload())
	ids, _ := s.GetIdentities()
	assert.Equal(t, []string{"id1"}, ids)
}

func TestReload_MissingDirectoryKeepsIndex(t *testing.T) {
	s, p := newEmpty(t)
	require.NoError(t, s.SaveIdentity("id1", "DOC1"))
	require.NoError(t, os.RemoveAll(p.AliasesDir()))

	err := s.Reload()
	assert.True(t, errors.Is(err, store.ErrNotFound))
	ids, ok := s.GetIdentities()
	require.True(t, ok)
	assert.Equal(t, []string{"id1"}, ids)
}

func TestInvalidNames(t *testing.T) {
	s, p := newEmpty(t)
	for _, name := range []string{"", ".", "..", "../escape", "a/b"} {
		assert.True(t, errors.Is(s.SaveIdentity(name, "x"), store.ErrInvalidName), name)
		assert.True(t, errors.Is(s.SaveAlias(name, "x"), store.ErrInvalidName), name)
		assert.True(t, errors.Is(s.RemoveAlias(name), store.ErrInvalidName), name)
	}
	assert.Empty(t, tmpEntries(t, p))
}

func TestTempNames_CollisionsBelowBound(t *testing.T) {
	n := 0
	seq := func() (string, error) {
		n++
		return fmt.Sprintf("%06d", n), nil
	}
	s, p := newEmpty(t, store.WithSuffixFunc(seq))

	// occupy the next 98 names
	for i := 1; i <= 98; i++ {
		stale := filepath.Join(p.TmpDir(), fmt.Sprintf("id1-%06d", i))
		require.NoError(t, os.WriteFile(stale, nil, perm.FileMode))
	}

	require.NoError(t, s.SaveIdentity("id1", "DOC1"))
	got, err := s.GetIdentity("id1")
	require.NoError(t, err)
	assert.Equal(t, "DOC1", got)
	assert.Len(t, tmpEntries(t, p), 98)
}

func TestTempNames_Exhausted(t *testing.T) {
	fixed := func() (string, error) { return "aaaaaa", nil }
	s, p := newEmpty(t, store.WithSuffixFunc(fixed))

	require.NoError(t, os.WriteFile(filepath.Join(p.TmpDir(), "id1-aaaaaa"), nil, perm.FileMode))
	err := s.SaveIdentity("id1", "DOC1")
	assert.True(t, errors.Is(err, store.ErrNameSpaceExhausted))
	assert.False(t, exists(filepath.Join(p.RootDir(), "id1")))

	require.NoError(t, os.WriteFile(filepath.Join(p.TmpDir(), ".deleted-aaaaaa"), nil, perm.FileMode))
	require.NoError(t, s.SaveAlias("a", "id1"))
	err = s.RemoveAlias("a")
	assert.True(t, errors.Is(err, store.ErrNameSpaceExhausted))
	assert.True(t, exists(filepath.Join(p.AliasesDir(), "a")))
}

func TestSuffixError(t *testing.T) {
	boom := errors.New("no entropy")
	s, _ := newEmpty(t, store.WithSuffixFunc(func() (string, error) { return "", boom }))
	assert.ErrorIs(t, s.SaveIdentity("id1", "DOC1"), boom)
}

type recordingEnforcer struct {
	set     []string
	checked []string
}

func (r *recordingEnforcer) SetStrict(path string) error {
	r.set = append(r.set, path)
	return nil
}

func (r *recordingEnforcer) CheckStrict(path string) error {
	r.checked = append(r.checked, path)
	return nil
}

func TestEnforcerIsApplied(t *testing.T) {
	rec := &recordingEnforcer{}
	p := config.PathsFrom(filepath.Join(t.TempDir(), "diddir"))
	s, err := store.Init(p, store.WithEnforcer(rec))
	require.NoError(t, err)

	assert.Equal(t, []string{p.RootDir(), p.AliasesDir(), p.TmpDir()}, rec.set)
	assert.Equal(t, []string{p.RootDir(), p.AliasesDir(), p.TmpDir()}, rec.checked)

	rec.set = nil
	require.NoError(t, s.SaveIdentity("id1", "DOC1"))
	require.Len(t, rec.set, 1)
	assert.Equal(t, p.TmpDir(), filepath.Dir(rec.set[0]))
}

type separatePaths struct{ root, aliases, tmp string }

func (p separatePaths) RootDir() string    { return p.root }
func (p separatePaths) AliasesDir() string { return p.aliases }
func (p separatePaths) TmpDir() string     { return p.tmp }

func TestDisjointDirectories(t *testing.T) {
	base := t.TempDir()
	p := separatePaths{
		root:    filepath.Join(base, "ids"),
		aliases: filepath.Join(base, "names"),
		tmp:     filepath.Join(base, "scratch"),
	}
	s, err := store.Init(p)
	require.NoError(t, err)
	for _, d := range []string{p.root, p.aliases, p.tmp} {
		require.NoError(t, perm.Default().CheckStrict(d))
	}

	require.NoError(t, s.SaveIdentity("id1", "DOC1"))
	require.NoError(t, s.SaveAlias("default", "id1"))
	require.NoError(t, s.RemoveIdentity("id1"))
	_, ok := s.GetIdentities()
	assert.False(t, ok)

	_, err = store.Open(p)
	require.NoError(t, err)
}

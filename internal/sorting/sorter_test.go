package sorting_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sortdir/internal/category"
	"sortdir/internal/services"
	"sortdir/internal/sorting"
	"sortdir/internal/testsupport"
)

func newSorter(t *testing.T, opts ...testsupport.ConfigOption) *sorting.Sorter {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	sorter, err := sorting.NewFromConfig(cfg, nil)
	require.NoError(t, err)
	return sorter
}

func runSort(t *testing.T, sorter *sorting.Sorter, root string) *sorting.Report {
	t.Helper()
	report, err := sorter.Sort(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

func TestSortFilesMediaAndUnpacksArchives(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.jpg"), "jpeg")
	testsupport.WriteFile(t, filepath.Join(root, "song.mp3"), "mp3")
	testsupport.WriteZip(t, filepath.Join(root, "archive.zip"), map[string]string{"doc.txt": "hello"})

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/archive/Document/doc.txt",
		"Audio/song.mp3",
		"Image/photo.jpg",
	}, testsupport.Tree(t, root))
	require.Equal(t, "hello", testsupport.ReadFile(t, filepath.Join(root, "Archive", "archive", "Document", "doc.txt")))
	require.Equal(t, 3, report.Count(services.ActionMoved))
	require.Equal(t, 1, report.Count(services.ActionExtracted))
	require.Equal(t, 2, report.Passes)
	require.Empty(t, report.Problems())
	require.NotEmpty(t, report.RunID)
	require.Equal(t, root, report.Root)
}

func TestSortIsIdempotent(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.jpg"), "jpeg")
	testsupport.WriteFile(t, filepath.Join(root, "Звіт 2024.docx"), "doc")
	testsupport.WriteFile(t, filepath.Join(root, "readme"), "no extension")
	testsupport.WriteZip(t, filepath.Join(root, "bundle.zip"), map[string]string{"clip.mp4": "mp4"})

	sorter := newSorter(t)
	first := runSort(t, sorter, root)
	require.True(t, first.Changed())
	sorted := testsupport.Tree(t, root)

	second := runSort(t, sorter, root)
	require.False(t, second.Changed())
	require.Equal(t, 0, second.Count(services.ActionSkippedConflict))
	require.Equal(t, 1, second.Count(services.ActionLeftUnknown))
	require.Equal(t, sorted, testsupport.Tree(t, root))
	require.NotEqual(t, first.RunID, second.RunID)
}

func TestSortLeavesCorruptArchiveInPlace(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "broken.zip"), "this is not a zip archive")

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{"broken.zip"}, testsupport.Tree(t, root))
	require.False(t, testsupport.Exists(t, filepath.Join(root, "Archive")))
	require.Equal(t, 1, report.Count(services.ActionExtractionFailed))
	problems := report.Problems()
	require.Len(t, problems, 1)
	require.ErrorIs(t, problems[0].Err, services.ErrUnsupportedArchive)
	require.NotEmpty(t, problems[0].Error)
}

func TestSortKeepsArchiveFolderWhenOtherArchiveSucceeded(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteZip(t, filepath.Join(root, "good.zip"), map[string]string{"a.txt": "a"})
	testsupport.WriteFile(t, filepath.Join(root, "junk.zip"), "garbage")

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/good/Document/a.txt",
		"junk.zip",
	}, testsupport.Tree(t, root))
	require.Equal(t, 1, report.Count(services.ActionExtracted))
	require.Equal(t, 1, report.Count(services.ActionExtractionFailed))
	require.False(t, testsupport.Exists(t, filepath.Join(root, "Archive", "junk")))
}

func TestSortTransliteratesNames(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "фото.png"), "png")
	testsupport.WriteZip(t, filepath.Join(root, "Архів літо.zip"), map[string]string{"пісня.mp3": "mp3"})

	runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/Arhiv_lito/Audio/pisnya.mp3",
		"Image/foto.png",
	}, testsupport.Tree(t, root))
}

func TestSortReportsNameCollisions(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a b.txt"), "first")
	testsupport.WriteFile(t, filepath.Join(root, "a_b.txt"), "second")

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{"Document/a_b.txt", "a_b.txt"}, testsupport.Tree(t, root))
	require.Equal(t, "first", testsupport.ReadFile(t, filepath.Join(root, "Document", "a_b.txt")))
	require.Equal(t, "second", testsupport.ReadFile(t, filepath.Join(root, "a_b.txt")))
	require.Equal(t, 1, report.Count(services.ActionMoved))
	require.Equal(t, 1, report.Count(services.ActionSkippedConflict))
	problems := report.Problems()
	require.Len(t, problems, 1)
	require.ErrorIs(t, problems[0].Err, services.ErrNameCollision)
	require.Equal(t, filepath.Join(root, "Document", "a_b.txt"), problems[0].Target)
}

func TestSortSkipsArchiveWhenFolderExists(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Archive", "photos", "keep.txt"), "existing")
	testsupport.WriteZip(t, filepath.Join(root, "photos.zip"), map[string]string{"new.jpg": "jpeg"})

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{"Archive/photos/keep.txt", "photos.zip"}, testsupport.Tree(t, root))
	require.Equal(t, 1, report.Count(services.ActionSkippedConflict))
}

func TestSortUnpacksNestedArchives(t *testing.T) {
	root := t.TempDir()
	inner := testsupport.ZipBytes(t, map[string]string{"doc.txt": "deep"})
	testsupport.WriteZip(t, filepath.Join(root, "outer.zip"), map[string]string{
		"inner.zip": inner,
		"cover.jpg": "jpeg",
	})

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/outer/Archive/inner/Document/doc.txt",
		"Archive/outer/Image/cover.jpg",
	}, testsupport.Tree(t, root))
	require.Equal(t, 2, report.Count(services.ActionExtracted))
	require.Equal(t, 3, report.Passes)

	depths := map[string]int{}
	for _, o := range report.Outcomes {
		depths[filepath.Base(o.Source)] = o.Depth
	}
	require.Equal(t, 0, depths["outer.zip"])
	require.Equal(t, 1, depths["inner.zip"])
	require.Equal(t, 2, depths["doc.txt"])
}

func TestSortFilesCategoryFoldersPackedInsideArchive(t *testing.T) {
	root := t.TempDir()
	inner := testsupport.ZipBytes(t, map[string]string{"doc.txt": "deep"})
	testsupport.WriteZip(t, filepath.Join(root, "pack.zip"), map[string]string{
		"Image/фото мама.jpg": "jpeg",
		"Image/ok.jpg":        "jpeg",
		"Archive/inner.zip":   inner,
		"Audio/notes.txt":     "text",
	})

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/pack/Archive/inner/Document/doc.txt",
		"Archive/pack/Document/notes.txt",
		"Archive/pack/Image/foto_mama.jpg",
		"Archive/pack/Image/ok.jpg",
	}, testsupport.Tree(t, root))
	require.Equal(t, 2, report.Count(services.ActionExtracted))
	require.Equal(t, 3, report.Count(services.ActionMoved))
	require.Equal(t, 3, report.Passes)
	require.Empty(t, report.Problems())

	second := runSort(t, newSorter(t), root)
	require.False(t, second.Changed())
}

func TestSortNamesThatTransliterateToNothing(t *testing.T) {
	t.Run("archive", func(t *testing.T) {
		root := t.TempDir()
		testsupport.WriteZip(t, filepath.Join(root, "ъ.zip"), map[string]string{"doc.txt": "x"})

		report := runSort(t, newSorter(t), root)

		require.Equal(t, []string{"Archive/_/Document/doc.txt"}, testsupport.Tree(t, root))
		require.Equal(t, 1, report.Count(services.ActionExtracted))
		require.Equal(t, filepath.Join(root, "Archive", "_"), report.Outcomes[0].Target)
	})
	t.Run("move", func(t *testing.T) {
		root := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(root, "ъ.txt"), "doc")

		runSort(t, newSorter(t), root)

		require.Equal(t, []string{"Document/_.txt"}, testsupport.Tree(t, root))
	})
	t.Run("bucket", func(t *testing.T) {
		root := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(root, "ь"), "?")

		report := runSort(t, newSorter(t, testsupport.WithUnknownBucket()), root)

		require.Equal(t, []string{"Unknown/_"}, testsupport.Tree(t, root))
		require.Equal(t, 1, report.Count(services.ActionMoved))
		require.Empty(t, report.Problems())
	})
}

func TestSortStopsAtMaxArchiveDepth(t *testing.T) {
	root := t.TempDir()
	inner := testsupport.ZipBytes(t, map[string]string{"doc.txt": "deep"})
	testsupport.WriteZip(t, filepath.Join(root, "outer.zip"), map[string]string{"inner.zip": inner})

	report := runSort(t, newSorter(t, testsupport.WithMaxDepth(1)), root)

	require.Equal(t, []string{"Archive/outer/inner.zip"}, testsupport.Tree(t, root))
	require.Equal(t, 1, report.Count(services.ActionExtracted))
	require.Equal(t, 1, report.Count(services.ActionDepthLimit))
	require.ErrorIs(t, report.Problems()[0].Err, services.ErrDepthLimit)
}

func TestSortZeroDepthNeverExtracts(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteZip(t, filepath.Join(root, "a.zip"), map[string]string{"doc.txt": "x"})

	report := runSort(t, newSorter(t, testsupport.WithMaxDepth(0)), root)

	require.Equal(t, []string{"a.zip"}, testsupport.Tree(t, root))
	require.Equal(t, 1, report.Count(services.ActionDepthLimit))
	require.False(t, testsupport.Exists(t, filepath.Join(root, "Archive")))
}

func TestSortRejectsOversizedArchive(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteZip(t, filepath.Join(root, "big.zip"), map[string]string{"doc.txt": "0123456789abcdef"})

	report := runSort(t, newSorter(t, testsupport.WithMaxExtractBytes(8)), root)

	require.Equal(t, []string{"big.zip"}, testsupport.Tree(t, root))
	require.Equal(t, 1, report.Count(services.ActionExtractionFailed))
	require.False(t, testsupport.Exists(t, filepath.Join(root, "Archive")))
}

func TestSortUnpacksTarballAndGzip(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTar(t, filepath.Join(root, "music.tar"), map[string]string{"track.ogg": "ogg"}, false)
	testsupport.WriteGzip(t, filepath.Join(root, "notes.txt.gz"), "gzipped notes")

	runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Archive/music/Audio/track.ogg",
		"Archive/notes.txt/Document/notes.txt",
	}, testsupport.Tree(t, root))
	require.Equal(t, "gzipped notes", testsupport.ReadFile(t, filepath.Join(root, "Archive", "notes.txt", "Document", "notes.txt")))
}

func TestSortUnknownPolicies(t *testing.T) {
	t.Run("leave", func(t *testing.T) {
		root := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(root, "data.xyz"), "?")
		testsupport.WriteFile(t, filepath.Join(root, ".bashrc"), "alias")

		report := runSort(t, newSorter(t), root)

		require.Equal(t, []string{".bashrc", "data.xyz"}, testsupport.Tree(t, root))
		require.Equal(t, 2, report.Count(services.ActionLeftUnknown))
		require.Empty(t, report.Problems())
	})
	t.Run("bucket", func(t *testing.T) {
		root := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(root, "data.xyz"), "?")
		testsupport.WriteFile(t, filepath.Join(root, "таблиця"), "?")

		report := runSort(t, newSorter(t, testsupport.WithUnknownBucket()), root)

		require.Equal(t, []string{"Unknown/data.xyz", "Unknown/tablitsya"}, testsupport.Tree(t, root))
		require.Equal(t, 2, report.Count(services.ActionMoved))
	})
}

func TestSortHonorsConfiguredExtensions(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "book.epub"), "epub")

	runSort(t, newSorter(t, testsupport.WithExtensions("epub")), root)

	require.Equal(t, []string{"Document/book.epub"}, testsupport.Tree(t, root))
}

func TestSortWalksNestedDirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "inbox", "deep", "photo.PNG"), "png")
	testsupport.WriteFile(t, filepath.Join(root, "inbox", "clip.mov"), "mov")
	testsupport.WriteFile(t, filepath.Join(root, "inbox", "Image", "nested.jpg"), "jpeg")

	report := runSort(t, newSorter(t), root)

	require.Equal(t, []string{
		"Image/nested.jpg",
		"Image/photo.PNG",
		"Video/clip.mov",
	}, testsupport.Tree(t, root))
	require.Equal(t, 3, report.Count(services.ActionMoved))
	require.DirExists(t, filepath.Join(root, "inbox", "deep"))
	require.Empty(t, report.Pruned)
}

func TestSortPrunesEmptiedDirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "inbox", "deep", "photo.jpg"), "jpeg")
	testsupport.WriteFile(t, filepath.Join(root, "keep", "data.xyz"), "?")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Video"), 0o755))

	report := runSort(t, newSorter(t, testsupport.WithPruneEmpty()), root)

	require.Equal(t, []string{"Image/photo.jpg", "keep/data.xyz"}, testsupport.Tree(t, root))
	require.NoDirExists(t, filepath.Join(root, "inbox"))
	require.DirExists(t, filepath.Join(root, "Video"))
	require.ElementsMatch(t, []string{
		filepath.Join(root, "inbox"),
		filepath.Join(root, "inbox", "deep"),
	}, report.Pruned)
}

func TestSortSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "elsewhere.jpg")
	testsupport.WriteFile(t, outside, "jpeg")
	link := filepath.Join(root, "link.jpg")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	report := runSort(t, newSorter(t), root)

	require.Empty(t, report.Outcomes)
	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink)
	require.True(t, testsupport.Exists(t, outside))
}

func TestSortRejectsInvalidRoot(t *testing.T) {
	sorter := newSorter(t)

	_, err := sorter.Sort(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, services.ErrInvalidSourcePath)
	require.True(t, services.IsFatal(err))

	file := filepath.Join(t.TempDir(), "file.txt")
	testsupport.WriteFile(t, file, "x")
	report, err := sorter.Sort(context.Background(), file)
	require.ErrorIs(t, err, services.ErrInvalidSourcePath)
	require.Nil(t, report)
	require.True(t, testsupport.Exists(t, file))

	_, err = sorter.Sort(context.Background(), "")
	require.ErrorIs(t, err, services.ErrInvalidSourcePath)
}

func TestSortStopsOnCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.jpg"), "jpeg")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newSorter(t).Sort(ctx, root)
	require.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, report)
	require.Empty(t, report.Outcomes)
	require.Equal(t, []string{"photo.jpg"}, testsupport.Tree(t, root))
}

func TestSortIgnoresLockFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.jpg"), "jpeg")

	lock, err := sorting.AcquireLock(root)
	require.NoError(t, err)
	report := runSort(t, newSorter(t, testsupport.WithUnknownBucket()), root)
	require.NoError(t, lock.Release())

	require.Len(t, report.Outcomes, 1)
	require.Equal(t, []string{"Image/photo.jpg"}, testsupport.Tree(t, root))
}

func TestReportJSON(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.jpg"), "jpeg")
	testsupport.WriteFile(t, filepath.Join(root, "broken.tar"), "nope")

	report := runSort(t, newSorter(t), root)
	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		RunID    string         `json:"run_id"`
		Counts   map[string]int `json:"counts"`
		Outcomes []struct {
			Source   string `json:"source"`
			Category string `json:"category"`
			Action   string `json:"action"`
			Error    string `json:"error"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, report.RunID, decoded.RunID)
	require.Equal(t, 1, decoded.Counts["moved"])
	require.Equal(t, 1, decoded.Counts["extraction-failed"])
	require.Equal(t, 0, decoded.Counts["failed"])
	require.Len(t, decoded.Outcomes, 2)
	for _, o := range decoded.Outcomes {
		switch o.Action {
		case "moved":
			require.Equal(t, category.Image.String(), o.Category)
			require.Empty(t, o.Error)
		case "extraction-failed":
			require.Equal(t, category.Archive.String(), o.Category)
			require.Contains(t, o.Error, services.ErrUnsupportedArchive.Error())
		default:
			t.Fatalf("unexpected action %q", o.Action)
		}
	}
}

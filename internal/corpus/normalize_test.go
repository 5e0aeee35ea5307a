package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"trendboard/internal/config"
	"trendboard/internal/models"
	"trendboard/internal/testutil"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		wantProduct string
		wantTag     string
		wantErr     bool
	}{
		{"simple", "CheckSuit_UK.csv", "CheckSuit", "UK", false},
		{"extra tokens ignored", "TrenchCoat_France_2024.csv", "TrenchCoat", "France", false},
		{"xlsx", "Palazzo_Spain.xlsx", "Palazzo", "Spain", false},
		{"no underscore", "CheckSuit.csv", "", "", true},
		{"empty product", "_UK.csv", "", "", true},
		{"empty tag", "CheckSuit_.csv", "", "", true},
		{"decomposed accent", "Cafe\u0301_Paris.csv", "Caf\u00e9", "Paris", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, tag, err := ParseFilename(tt.file)
			if tt.wantErr {
				if !errors.Is(err, ErrBadFilename) {
					t.Fatalf("ParseFilename(%q) error = %v, want ErrBadFilename", tt.file, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilename(%q) error = %v", tt.file, err)
			}
			if product != tt.wantProduct || tag != tt.wantTag {
				t.Errorf("ParseFilename(%q) = (%q, %q), want (%q, %q)", tt.file, product, tag, tt.wantProduct, tt.wantTag)
			}
		})
	}
}

func TestNormalize_CategoryFromCatalog(t *testing.T) {
	root := t.TempDir()
	n := NewNormalizer(config.DefaultCatalog())

	tests := []struct {
		file string
		want string
	}{
		{"CheckSuit_France.csv", "Suits"},
		{"TrenchCoat_France.csv", "Coats"},
		{"MysteryItem_France.csv", models.UnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := testutil.WriteTrends(t, root, "topic", tt.file, testutil.ThreeWeeks...)

			batches, err := n.Normalize(Entry{Folder: "topic", Path: path})
			require.NoError(t, err)
			require.Len(t, batches, 1)
			for _, r := range batches[0].Records {
				assert.Equal(t, tt.want, r.Category)
				assert.Equal(t, "France", r.Location)
			}
		})
	}
}

func TestNormalize_AliasExpansion(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteTrends(t, root, "suits", "CheckSuit_UK.csv", testutil.ThreeWeeks...)

	batches, err := NewNormalizer(config.DefaultCatalog()).Normalize(Entry{Folder: "suits", Path: path})
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, "London", batches[0].Location)
	assert.Equal(t, "Birmingham", batches[1].Location)

	london, birmingham := batches[0].Records, batches[1].Records
	require.Len(t, london, 3)
	require.Len(t, birmingham, 3)
	for i := range london {
		assert.Equal(t, "London", london[i].Location)
		assert.Equal(t, "Birmingham", birmingham[i].Location)

		// Identical apart from the location
		copyRec := birmingham[i]
		copyRec.Location = "London"
		assert.Equal(t, london[i], copyRec)
	}

	assert.Equal(t, testutil.Date(t, "2024-01-07"), london[0].Date)
	assert.Equal(t, int64(61), london[2].Mentions)
}

func TestNormalize_RowConventions(t *testing.T) {
	root := t.TempDir()
	n := NewNormalizer(config.DefaultCatalog())

	tests := []struct {
		name    string
		content string
		want    []int64
	}{
		{
			name:    "header row after preamble",
			content: "Category: All categories\n\nWeek,CheckSuit: (France)\n2024-01-07,10\n2024-01-14,12\n",
			want:    []int64{10, 12},
		},
		{
			name:    "no header row",
			content: "preamble\npreamble\n2024-01-07,10\n2024-01-14,12\n",
			want:    []int64{10, 12},
		},
		{
			name:    "below one marker",
			content: "a\nb\nWeek,x\n2024-01-07,<1\n",
			want:    []int64{0},
		},
		{
			name:    "blank lines skipped",
			content: "a\nb\nWeek,x\n2024-01-07,3\n\n2024-01-14,4\n",
			want:    []int64{3, 4},
		},
		{
			name:    "windows line endings",
			content: "a\r\nb\r\nWeek,x\r\n2024-01-07,3\r\n",
			want:    []int64{3},
		},
		{
			name:    "header only",
			content: "a\nb\nWeek,x\n",
			want:    nil,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, root, "topic", fmt.Sprintf("CheckSuit_France%d.csv", i), tt.content)
			batches, err := n.Normalize(Entry{Folder: "topic", Path: path})
			require.NoError(t, err)

			var got []int64
			for _, b := range batches {
				for _, r := range b.Records {
					got = append(got, r.Mentions)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_ParseErrors(t *testing.T) {
	root := t.TempDir()
	n := NewNormalizer(config.DefaultCatalog())

	tests := []struct {
		name     string
		file     string
		content  string
		wantLine int
		wantErr  error
	}{
		{"bad filename", "CheckSuit.csv", "a\nb\n2024-01-07,1\n", 0, ErrBadFilename},
		{"empty file", "CheckSuit_A.csv", "", 0, errNoColumns},
		{"preamble only", "CheckSuit_B.csv", "a\nb\n", 0, errNoColumns},
		{"three columns", "CheckSuit_C.csv", "a\nb\nWeek,x\n2024-01-07,1,2\n", 4, ErrColumnCount},
		{"single column", "CheckSuit_D.csv", "a\nb\nWeek,x\n2024-01-07\n", 4, ErrColumnCount},
		{"bad date", "CheckSuit_E.csv", "a\nb\nWeek,x\n2024-01-07,1\nlast week,2\n", 5, errBadDate},
		{"negative count", "CheckSuit_F.csv", "a\nb\nWeek,x\n2024-01-07,-1\n", 4, errBadMentions},
		{"fractional count", "CheckSuit_G.csv", "a\nb\nWeek,x\n2024-01-07,1.5\n", 4, errBadMentions},
		{"bad date in first data row", "CheckSuit_H.csv", "Category: All\n\n2024-13-45,10\n2024-01-14,20\n", 3, errBadDate},
		{"bad first row with text count", "CheckSuit_I.csv", "a\nb\n2024-01-07,1\n2024-13-45,x\n", 4, errBadDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, root, "topic", tt.file, tt.content)

			_, err := n.Normalize(Entry{Folder: "topic", Path: path})

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, path, pe.Path)
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalize_XLSX(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "coats"), 0o755))
	path := filepath.Join(root, "coats", "TrenchCoat_Spain.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]string{
		{"Category: All categories"},
		{"Exported from Google Trends"},
		{"Week", "TrenchCoat: (Spain)"},
		{"2024-01-07", "20"},
		{"2024-01-14", "25"},
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	batches, err := NewNormalizer(config.DefaultCatalog()).Normalize(Entry{Folder: "coats", Path: path})
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, "Madrid", batches[0].Location)
	assert.Equal(t, "Barcelona", batches[1].Location)
	require.Len(t, batches[0].Records, 2)
	assert.Equal(t, int64(25), batches[0].Records[1].Mentions)
	assert.Equal(t, "Coats", batches[0].Records[1].Category)
}

func TestParseDate_Layouts(t *testing.T) {
	want := testutil.Date(t, "2024-01-07")
	for _, s := range []string{"2024-01-07", "2024-01-07T10:00:00", "2024/01/07", "01/07/2024", " 2024-01-07 "} {
		got, err := parseDate(s)
		if err != nil {
			t.Errorf("parseDate(%q) error = %v", s, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", s, got, want)
		}
	}
}

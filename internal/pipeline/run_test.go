package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathook007/perf-review-tool/internal/llm"
	"github.com/deathook007/perf-review-tool/internal/types"
)

// stubClient returns five uniquely-opened bullets per call, or a fixed error.
type stubClient struct {
	mu    sync.Mutex
	calls int
	err   error
}

var (
	callWords = []string{
		"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot",
		"Golf", "Hotel", "India", "Juliett", "Kilo", "Lima",
	}
	slotOrdinals = []string{"primo", "secundo", "tertio", "quarto", "quinto"}
)

func (c *stubClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}

	word := callWords[c.calls%len(callWords)]
	c.calls++

	bullets := make([]string, 0, types.BulletsPerSection)
	for _, ord := range slotOrdinals {
		bullets = append(bullets, fmt.Sprintf("%s %s I delivered steady outcomes for the team.", word, ord))
	}
	out, err := json.Marshal(bullets)
	return string(out), err
}

func (c *stubClient) Close() error { return nil }

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	content := "Parent Objective Title,Title,Owner,Teams,State,Progress %\n" +
		"Mentorship,Drove mentorship for two new joiners as SDE2,Priya Sharma,Payments,Done,100\n" +
		"Raising the Bar,Anchored the code review rotation,Priya Sharma,Payments,Done,100\n" +
		"Tech Initiatives,Moved the event pipeline onto Kafka,Priya Sharma,Payments,In Progress,70\n" +
		"Roadmap Delivery,Shipped the checkout revamp,Priya Sharma,Payments,Done,100\n"

	path := filepath.Join(dir, "objectives.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "review.md")

	result, err := Run(context.Background(), Options{
		CSVPath:    writeExport(t, dir),
		OutputPath: outPath,
		Client:     &stubClient{},
	})
	require.NoError(t, err)

	review := result.Review
	assert.Equal(t, "Priya Sharma", review.Metadata.Owner)
	assert.Equal(t, "Payments", review.Metadata.Team)
	assert.Equal(t, "SDE2", review.Metadata.Role)
	assert.NotEmpty(t, review.Metadata.SourceFileID)

	require.Len(t, review.Sections, types.SectionCount)
	for _, section := range review.Sections {
		assert.Len(t, section.Bullets, types.BulletsPerSection)
		assert.False(t, section.Incomplete)
	}

	assert.True(t, result.Report.Passed, "violations: %+v", result.Report.Violations)
	assert.True(t, result.Allocation.Sparse)
	assert.Equal(t, 0, result.SkippedRows)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Performance Review")
	assert.Equal(t, outPath, result.OutputPath)
}

func TestRun_FallbackOnRenderFailure(t *testing.T) {
	dir := t.TempDir()

	result, err := Run(context.Background(), Options{
		CSVPath: writeExport(t, dir),
		Client:  &stubClient{err: errors.New("model unavailable")},
	})
	require.NoError(t, err, "render failures degrade, they do not abort")

	require.Len(t, result.Review.Sections, types.SectionCount)
	for _, section := range result.Review.Sections {
		assert.True(t, section.Incomplete, "section %d", section.Section)
		assert.Len(t, section.Bullets, types.BulletsPerSection)
	}
	assert.True(t, result.Report.Passed, "fallback text still satisfies the structural rules")
}

func TestRun_RoleOverride(t *testing.T) {
	dir := t.TempDir()

	result, err := Run(context.Background(), Options{
		CSVPath:      writeExport(t, dir),
		RoleOverride: "SDE3",
		Client:       &stubClient{},
	})
	require.NoError(t, err)
	assert.Equal(t, "SDE3", result.Review.Metadata.Role)
}

func TestRun_OwnerOverrideRecoversMissingMetadata(t *testing.T) {
	dir := t.TempDir()
	content := "Parent Objective Title,Title,Owner,Teams,State,Progress %\n" +
		",Orphaned row without a category,Priya Sharma,Payments,Done,100\n"
	path := filepath.Join(dir, "objectives.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Without an owner the export is unusable.
	_, err := Run(context.Background(), Options{CSVPath: path, Client: &stubClient{}})
	require.Error(t, err)

	// With one the run proceeds on a fully qualitative allocation.
	result, err := Run(context.Background(), Options{
		CSVPath: path,
		Owner:   "Priya Sharma",
		Team:    "Payments",
		Client:  &stubClient{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", result.Review.Metadata.Owner)
	assert.Equal(t, "Payments", result.Review.Metadata.Team)
	assert.Equal(t, 0, result.Allocation.EvidenceTotal)
	require.Len(t, result.Review.Sections, types.SectionCount)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := Run(context.Background(), Options{
		CSVPath: filepath.Join(t.TempDir(), "missing.csv"),
		Client:  &stubClient{},
	})
	assert.Error(t, err)
}

func TestRunBatch_IsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeExport(t, dir)
	missing := filepath.Join(dir, "missing.csv")

	items := RunBatch(context.Background(), []string{good, missing}, Options{
		Client: &stubClient{},
	})
	require.Len(t, items, 2)

	require.NoError(t, items[0].Err)
	assert.Equal(t, good, items[0].CSVPath)
	assert.FileExists(t, items[0].Result.OutputPath)
	assert.Equal(t, filepath.Join(dir, "objectives_review.md"), items[0].Result.OutputPath)

	assert.Error(t, items[1].Err)
}

func TestBatchOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "team_review.md"), batchOutputPath("out", filepath.Join("data", "team.csv")))
	assert.Equal(t, filepath.Join("data", "team_review.md"), batchOutputPath("", filepath.Join("data", "team.csv")))
}

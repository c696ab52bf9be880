package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/config"
	"bibcleaner/core/dblp"
	"bibcleaner/core/reconcile"
	"bibcleaner/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the clean command
	cleanOutputDir      string
	cleanMaxRecords     int
	cleanNonInteractive string
	cleanUpload         bool
)

// cleanCmd cleans one BibTeX file.
var cleanCmd = &cobra.Command{
	Use:   "clean <file.bib>",
	Short: "Clean a BibTeX file against DBLP",
	Long: `Looks up every record of the file on DBLP and writes two files next to it:
<name>_cleaned.bib with the cleaned records and <name>_cleaned_crossref.bib with
the proceedings and collections they cross-reference.

Records DBLP cannot match unambiguously are kept as they are, preceded by a
"NOT CLEANED ENTRY" comment. When a handful of candidates match you are asked
to pick one, unless --non-interactive selects a policy.

Examples:
  # Interactive run
  bibcleaner clean thesis.bib

  # Try the first 20 records only, keeping the original on ambiguity
  bibcleaner clean thesis.bib --max-records 20 --non-interactive original

  # Write to another directory and upload the results
  bibcleaner clean thesis.bib --output-dir out --upload`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutputDir, "output-dir", "o", "", "Directory for the cleaned files (default: next to the source)")
	cleanCmd.Flags().IntVar(&cleanMaxRecords, "max-records", -1, "Stop looking records up after this many were cleaned (-1: no limit)")
	cleanCmd.Flags().StringVar(&cleanNonInteractive, "non-interactive", "", "Settle ambiguous matches without asking: original or first")
	cleanCmd.Flags().BoolVar(&cleanUpload, "upload", false, "Upload the cleaned files to object storage")

	RootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := args[0]

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg := rt.cfg

	if cmd.Flags().Changed("max-records") {
		cfg.Clean.MaxRecords = cleanMaxRecords
	}
	policy := cfg.Clean.ChoicePolicy
	if cleanNonInteractive != "" {
		policy = cleanNonInteractive
	}
	chooser, err := chooserFor(policy, cmd.InOrStdin(), cmd.OutOrStdout(), rt.log)
	if err != nil {
		return err
	}

	file, err := parseFile(source)
	if err != nil {
		return err
	}
	records := len(file.Records())
	rt.log.Info("Loaded BibTeX file",
		zap.String("source", source),
		zap.Int("entries", len(file.Entries)),
		zap.Int("records", records),
	)
	rt.log.Info("Expected finish", zap.Time("eta", estimateFinish(time.Now(), records, cfg.Clean.MaxRecords, cfg.DBLP.Interval())))

	query := dblp.NewQueryClient(rt.client, cfg.DBLP)
	fetcher := dblp.NewFetcher(rt.client, cfg.DBLP, rt.log)
	resolver := reconcile.NewResolver(query, fetcher, chooser, cfg.Clean, rt.log)
	result := reconcile.NewEngine(resolver, cfg.Clean, rt.log).Run(ctx, file.Entries)

	regularPath, crossrefPath, err := writeOutputs(result, source, cleanOutputDir)
	if err != nil {
		return err
	}
	rt.log.Info("Saved cleaned BibTeX", zap.String("regular", regularPath), zap.String("crossref", crossrefPath))

	if cleanUpload || cfg.Storage.Enabled {
		// Uploads still run after an interrupt since the files are complete.
		if err := uploadOutputs(context.WithoutCancel(ctx), cfg, rt.log, result.RunID, regularPath, crossrefPath); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result.Summary))
	if ctx.Err() != nil {
		rt.log.Warn("Run was interrupted, unprocessed records were kept unchanged")
	}
	return nil
}

func parseFile(name string) (*bibtex.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	file, err := bibtex.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return file, nil
}

// writeOutputs writes both files and returns their paths.
func writeOutputs(result *reconcile.Result, source, dir string) (string, string, error) {
	regularPath, crossrefPath := reconcile.OutputPaths(source, dir)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	regular, crossref := result.Files(source, time.Now())
	if err := os.WriteFile(regularPath, []byte(regular.String()), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", regularPath, err)
	}
	if err := os.WriteFile(crossrefPath, []byte(crossref.String()), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", crossrefPath, err)
	}
	return regularPath, crossrefPath, nil
}

func uploadOutputs(ctx context.Context, cfg *config.Config, log *zap.Logger, runID string, paths ...string) error {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	files := make([]storage.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, storage.File{Name: path.Join(runID, filepath.Base(p)), Data: data})
	}

	names, err := storage.UploadFiles(ctx, client, cfg.Storage, files)
	if err != nil {
		return fmt.Errorf("failed to upload cleaned files: %w", err)
	}
	log.Info("Uploaded cleaned files", zap.String("bucket", cfg.Storage.Bucket), zap.Strings("objects", names))
	return nil
}

// estimateFinish assumes two index requests per record, each waiting one interval.
func estimateFinish(now time.Time, records, maxRecords int, interval time.Duration) time.Time {
	if maxRecords >= 0 && maxRecords < records {
		records = maxRecords
	}
	return now.Add(time.Duration(2*records) * interval)
}

func renderSummary(s reconcile.Summary) string {
	rows := [][]string{
		{"Records", strconv.Itoa(s.Records)},
		{"Cleaned", strconv.Itoa(s.Cleaned)},
		{"Venues added", strconv.Itoa(s.Parents)},
		{"Too many results", strconv.Itoa(s.TooMany)},
		{"No results", strconv.Itoa(s.NoResults)},
		{"Kept by choice", strconv.Itoa(s.UserDeferred)},
		{"Not looked up", strconv.Itoa(s.Skipped + s.Cancelled)},
		{"Duplicate keys", strconv.Itoa(s.Duplicates)},
	}
	return renderTable([]string{"Outcome", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

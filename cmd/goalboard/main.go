package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goalboard/internal/align"
	"goalboard/internal/checkindb"
	"goalboard/internal/goalstore"
	"goalboard/internal/heatmap"
	"goalboard/internal/progress"
	"goalboard/internal/report"
	"goalboard/internal/workspace"
)

const appName = "goalboard"

func main() {
	flag.String("workspace", "", "Path to workspace root")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: OKR progress and alignment tracking\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [command] [flags]\n\n", appName)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  init      Initialize a new workspace")
		fmt.Fprintln(os.Stderr, "  validate  Validate goal documents and alignment")
		fmt.Fprintln(os.Stderr, "  checkin   Record or list weekly check-ins")
		fmt.Fprintln(os.Stderr, "  sync      Recompute progress from check-ins and write back")
		fmt.Fprintln(os.Stderr, "  score     Compute cycle-close scores")
		fmt.Fprintln(os.Stderr, "  report    Render progress, alignment, heatmap, summary, or team views")
		fmt.Fprintln(os.Stderr, "  help      Show this help")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	workspacePath, remaining, err := extractWorkspaceFlag(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	args := remaining
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	switch args[0] {
	case "init":
		if err := runInit(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "validate":
		if err := runValidate(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "checkin":
		if err := runCheckin(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "sync":
		if err := runSync(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "score":
		if err := runScore(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "report":
		if err := runReport(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

type workspaceOverrides struct {
	GoalsDir   string
	ReportsDir string
	CheckinsDB string
	ConfigPath string
}

type resolvedWorkspace struct {
	Workspace  *workspace.Workspace
	GoalsDir   string
	ReportsDir string
	CheckinsDB string
	ConfigPath string
}

func resolveWorkspaceAndOverrides(root string, overrides workspaceOverrides) (*resolvedWorkspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("--workspace is required")
	}
	ws, err := workspace.Resolve(root)
	if err != nil {
		return nil, err
	}
	resolved := &resolvedWorkspace{Workspace: ws}
	resolved.GoalsDir = ws.GoalsDir
	resolved.ReportsDir = ws.ReportsDir
	resolved.CheckinsDB = ws.CheckinsDBPath
	resolved.ConfigPath = ws.ConfigPath

	if overrides.GoalsDir != "" {
		resolved.GoalsDir, err = ws.ResolvePath(overrides.GoalsDir)
		if err != nil {
			return nil, fmt.Errorf("resolve --goals-dir: %w", err)
		}
	}
	if overrides.ReportsDir != "" {
		resolved.ReportsDir, err = ws.ResolvePath(overrides.ReportsDir)
		if err != nil {
			return nil, fmt.Errorf("resolve --reports-dir: %w", err)
		}
	}
	if overrides.CheckinsDB != "" {
		resolved.CheckinsDB, err = ws.ResolvePath(overrides.CheckinsDB)
		if err != nil {
			return nil, fmt.Errorf("resolve --checkins-db: %w", err)
		}
	}
	if overrides.ConfigPath != "" {
		resolved.ConfigPath, err = ws.ResolvePath(overrides.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("resolve --config: %w", err)
		}
	}
	return resolved, nil
}

func extractWorkspaceFlag(args []string) (string, []string, error) {
	var workspacePath string
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--workspace" {
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--workspace requires a value")
			}
			workspacePath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--workspace=") {
			workspacePath = strings.TrimPrefix(arg, "--workspace=")
			continue
		}
		remaining = append(remaining, arg)
	}
	return workspacePath, remaining, nil
}

func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --as-of: %w", err)
	}
	return parsed, nil
}

func runInit(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	template := fs.String("template", "minimal", "Workspace template (default: minimal)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *template != "minimal" {
		return fmt.Errorf("unknown template: %s", *template)
	}
	if strings.TrimSpace(workspacePath) == "" {
		return fmt.Errorf("--workspace is required")
	}

	root, err := workspace.ResolveRoot(workspacePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create workspace root: %w", err)
	}
	ws, err := workspace.Resolve(root)
	if err != nil {
		return err
	}
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	if err := writeFileIfMissing(filepath.Join(ws.GoalsDir, "company.yml"), minimalGoalsTemplate); err != nil {
		return err
	}
	if err := writeFileIfMissing(ws.ConfigPath, minimalConfigTemplate); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Initialized workspace: %s\n", ws.Root)
	fmt.Fprintln(os.Stdout, "Next steps:")
	fmt.Fprintln(os.Stdout, "  1. Edit goals/company.yml with your objectives")
	fmt.Fprintf(os.Stdout, "  2. Run: %s validate --workspace %s\n", appName, ws.Root)
	fmt.Fprintf(os.Stdout, "  3. Record check-ins: %s checkin add --kr KR-1 --user you --value 42 --status green\n", appName)
	return nil
}

func writeFileIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runValidate(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{GoalsDir: *goalsDir})
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}
	if errs := align.ValidateObjectives(store.Objectives()); len(errs) > 0 {
		return errs
	}

	objectives := store.Objectives()
	krCount := len(store.KeyResults())
	fmt.Fprintf(os.Stdout, "OK: %d objectives, %d key results, alignment valid\n", len(objectives), krCount)
	return nil
}

func runCheckin(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s checkin: missing subcommand (add, list)", appName)
	}

	switch args[0] {
	case "add":
		return runCheckinAdd(args[1:], workspacePath)
	case "list":
		return runCheckinList(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s checkin: unknown subcommand %q", appName, args[0])
	}
}

func runCheckinAdd(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("checkin add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	krID := fs.String("kr", "", "Key result id")
	userID := fs.String("user", "", "User recording the check-in")
	value := fs.Float64("value", 0, "Measured value for the key result")
	status := fs.String("status", "", "Asserted status (green, yellow, red)")
	comment := fs.String("comment", "", "Optional comment")
	weekStr := fs.String("week", "", "Week date (YYYY-MM-DD, default: today UTC)")
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	checkinsDB := fs.String("checkins-db", "", "Path to check-ins SQLite DB (default: <workspace>/checkins/checkins.sqlite)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *krID == "" {
		return fmt.Errorf("--kr is required")
	}
	if *userID == "" {
		return fmt.Errorf("--user is required")
	}
	if *status == "" {
		return fmt.Errorf("--status is required")
	}
	ciStatus, err := goalstore.ParseCheckInStatus(*status)
	if err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		CheckinsDB: *checkinsDB,
	})
	if err != nil {
		return err
	}
	if err := resolved.Workspace.EnsureDirs(); err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}
	if _, ok := store.KeyResultLookup(*krID); !ok {
		return fmt.Errorf("unknown key result %q", *krID)
	}

	week, err := parseAsOf(*weekStr)
	if err != nil {
		return err
	}

	db, err := checkindb.Open(resolved.CheckinsDB)
	if err != nil {
		return err
	}
	defer db.Close()

	id, created, err := db.Upsert(goalstore.CheckIn{
		KeyResultID: *krID,
		UserID:      *userID,
		WeekStart:   week,
		Value:       *value,
		Status:      ciStatus,
		Comment:     *comment,
	}, time.Now().UTC())
	if err != nil {
		return err
	}

	week = goalstore.WeekStart(week)
	if created {
		fmt.Fprintf(os.Stdout, "Recorded check-in %s for %s (week of %s)\n", id, *krID, week.Format("2006-01-02"))
	} else {
		fmt.Fprintf(os.Stdout, "Updated check-in %s for %s (week of %s)\n", id, *krID, week.Format("2006-01-02"))
	}
	return nil
}

func runCheckinList(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("checkin list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	krID := fs.String("kr", "", "Key result id")
	checkinsDB := fs.String("checkins-db", "", "Path to check-ins SQLite DB (default: <workspace>/checkins/checkins.sqlite)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *krID == "" {
		return fmt.Errorf("--kr is required")
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{CheckinsDB: *checkinsDB})
	if err != nil {
		return err
	}

	db, err := checkindb.Open(resolved.CheckinsDB)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListByKeyResult(*krID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(os.Stdout, "No check-ins recorded for %s\n", *krID)
		return nil
	}
	for _, ci := range list {
		line := fmt.Sprintf("%s  %-8s %10.2f  %s", ci.WeekStart.Format("2006-01-02"), ci.Status, ci.Value, ci.UserID)
		if ci.Comment != "" {
			line += "  # " + ci.Comment
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func runSync(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	checkinsDB := fs.String("checkins-db", "", "Path to check-ins SQLite DB (default: <workspace>/checkins/checkins.sqlite)")
	dryRun := fs.Bool("dry-run", false, "Show the diff without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		CheckinsDB: *checkinsDB,
	})
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}

	db, err := checkindb.Open(resolved.CheckinsDB)
	if err != nil {
		return err
	}
	defer db.Close()

	latest, err := db.LatestByKeyResult()
	if err != nil {
		return err
	}

	updated := syncDocuments(store.Documents, latest)

	diff, err := goalstore.RenderDiff(updated)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(os.Stdout, "Already in sync, nothing to write")
		return nil
	}
	fmt.Fprint(os.Stdout, diff)

	if *dryRun {
		fmt.Fprintln(os.Stdout, "Dry run, no files written")
		return nil
	}
	for _, doc := range updated {
		if err := goalstore.WriteDocument(doc); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stdout, "Synced %d documents\n", len(updated))
	return nil
}

// syncDocuments updates each key result's current value from its latest
// check-in and recomputes automatic objective progress. Manual objectives
// keep their stored progress.
func syncDocuments(docs []goalstore.Document, latest map[string]goalstore.CheckIn) []goalstore.Document {
	updated := make([]goalstore.Document, len(docs))
	for i, doc := range docs {
		docCopy := doc
		docCopy.Objectives = make([]goalstore.Objective, len(doc.Objectives))
		for j, obj := range doc.Objectives {
			objCopy := obj
			objCopy.KeyResults = make([]goalstore.KeyResult, len(obj.KeyResults))
			for k, kr := range obj.KeyResults {
				if ci, ok := latest[kr.ID]; ok {
					kr.Current = ci.Value
				}
				objCopy.KeyResults[k] = kr
			}
			if objCopy.ProgressType == goalstore.ProgressAutomatic {
				objCopy.Progress = float64(progress.ObjectiveProgress(objCopy))
			}
			docCopy.Objectives[j] = objCopy
		}
		updated[i] = docCopy
	}
	return updated
}

func runScore(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	configPath := fs.String("config", "", "Path to display config (default: <workspace>/config.yml)")
	write := fs.Bool("write", false, "Persist computed scores to the goal documents (cycle close)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		ConfigPath: *configPath,
	})
	if err != nil {
		return err
	}
	settings, err := report.LoadSettings(resolved.ConfigPath)
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}

	for _, obj := range store.Objectives() {
		pct := progress.ObjectiveProgress(obj)
		score := progress.Score(float64(pct))
		fmt.Fprintf(os.Stdout, "%-12s %4s  score %s  %s\n",
			obj.ID, settings.FormatPercent(pct), settings.FormatScore(score), obj.Title)
	}

	if !*write {
		return nil
	}

	for _, doc := range store.Documents {
		docCopy := doc
		docCopy.Objectives = make([]goalstore.Objective, len(doc.Objectives))
		for j, obj := range doc.Objectives {
			objCopy := obj
			score := progress.Score(float64(progress.ObjectiveProgress(objCopy)))
			objCopy.Score = &score
			docCopy.Objectives[j] = objCopy
		}
		if err := goalstore.WriteDocument(docCopy); err != nil {
			return err
		}
	}
	fmt.Fprintln(os.Stdout, "Scores written")
	return nil
}

func runReport(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s report: missing subcommand (progress, alignment, heatmap, summary, team)", appName)
	}

	switch args[0] {
	case "progress":
		return runReportProgress(args[1:], workspacePath)
	case "alignment":
		return runReportAlignment(args[1:], workspacePath)
	case "heatmap":
		return runReportHeatmap(args[1:], workspacePath)
	case "summary":
		return runReportSummary(args[1:], workspacePath)
	case "team":
		return runReportTeam(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s report: unknown subcommand %q", appName, args[0])
	}
}

func runReportProgress(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("report progress", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	reportsDir := fs.String("reports-dir", "", "Directory to write report snapshots (default: <workspace>/reports)")
	configPath := fs.String("config", "", "Path to display config (default: <workspace>/config.yml)")
	asOfStr := fs.String("as-of", "", "As-of date (YYYY-MM-DD, default: today UTC)")
	jsonOut := fs.Bool("json", false, "Print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		ReportsDir: *reportsDir,
		ConfigPath: *configPath,
	})
	if err != nil {
		return err
	}
	if err := resolved.Workspace.EnsureDirs(); err != nil {
		return err
	}
	settings, err := report.LoadSettings(resolved.ConfigPath)
	if err != nil {
		return err
	}
	asOf, err := parseAsOf(*asOfStr)
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}
	objectives := store.Objectives()

	rep := report.ProgressReport{
		SchemaVersion: report.ReportSchemaVersion,
		AsOf:          asOf.Format("2006-01-02"),
		Hero:          heatmap.BuildHeroSummary(objectives),
	}
	for _, obj := range objectives {
		pct := progress.ObjectiveProgress(obj)
		rep.Objectives = append(rep.Objectives, report.ObjectiveReport{
			ID:       obj.ID,
			Title:    obj.Title,
			GoalType: string(obj.GoalType),
			TeamID:   obj.TeamID,
			Owner:    obj.OwnerID,
			Progress: pct,
			Light:    progress.Classify(float64(pct)),
			Score:    progress.ObjectiveScore(obj),
		})
	}

	path := report.ReportPathForDate(resolved.ReportsDir, asOf)
	if err := report.WriteReport(path, rep); err != nil {
		return err
	}

	if *jsonOut {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	fmt.Fprintf(os.Stdout, "Progress report %s (%s)\n", rep.AsOf, settings.FiscalQuarter(asOf))
	for _, obj := range rep.Objectives {
		fmt.Fprintf(os.Stdout, "%-12s %-10s %4s  %-6s  %s\n",
			obj.ID, obj.GoalType, settings.FormatPercent(obj.Progress), obj.Light, obj.Title)
	}
	fmt.Fprintf(os.Stdout, "Snapshot written: %s\n", path)
	return nil
}

func runReportAlignment(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("report alignment", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	configPath := fs.String("config", "", "Path to display config (default: <workspace>/config.yml)")
	jsonOut := fs.Bool("json", false, "Print the forest as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		ConfigPath: *configPath,
	})
	if err != nil {
		return err
	}
	settings, err := report.LoadSettings(resolved.ConfigPath)
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}
	if errs := align.ValidateObjectives(store.Objectives()); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "warning: alignment issues found, run %s validate for details:\n%s\n", appName, errs)
	}
	roots := align.BuildForest(store.Objectives())

	if *jsonOut {
		data, err := json.MarshalIndent(roots, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal forest: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	for _, root := range roots {
		printNode(root, 0, settings)
	}
	return nil
}

func printNode(node *align.Node, depth int, settings report.Settings) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(os.Stdout, "%s%s [%s] %s %s (%s)\n",
		indent, node.ID, node.GoalType, settings.FormatPercent(node.Progress), node.Light, node.Title)
	for _, child := range node.Children {
		printNode(child, depth+1, settings)
	}
}

func runReportHeatmap(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("report heatmap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	checkinsDB := fs.String("checkins-db", "", "Path to check-ins SQLite DB (default: <workspace>/checkins/checkins.sqlite)")
	asOfStr := fs.String("as-of", "", "As-of date (YYYY-MM-DD, default: today UTC)")
	jsonOut := fs.Bool("json", false, "Print the heatmap as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		CheckinsDB: *checkinsDB,
	})
	if err != nil {
		return err
	}
	asOf, err := parseAsOf(*asOfStr)
	if err != nil {
		return err
	}

	rows, _, err := buildHeatmapRows(resolved, asOf)
	if err != nil {
		return err
	}

	if *jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal heatmap: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	if len(rows) > 0 {
		header := fmt.Sprintf("%-12s", "")
		for _, bucket := range rows[0].Buckets {
			header += fmt.Sprintf(" %10s", bucket.Date.Format("01-02"))
		}
		fmt.Fprintln(os.Stdout, header)
	}
	for _, row := range rows {
		line := fmt.Sprintf("%-12s", row.KeyResultID)
		for _, bucket := range row.Buckets {
			line += fmt.Sprintf(" %3d %-6s", bucket.Value, bucket.Light)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func runReportSummary(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("report summary", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	checkinsDB := fs.String("checkins-db", "", "Path to check-ins SQLite DB (default: <workspace>/checkins/checkins.sqlite)")
	configPath := fs.String("config", "", "Path to display config (default: <workspace>/config.yml)")
	asOfStr := fs.String("as-of", "", "As-of date (YYYY-MM-DD, default: today UTC)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		CheckinsDB: *checkinsDB,
		ConfigPath: *configPath,
	})
	if err != nil {
		return err
	}
	settings, err := report.LoadSettings(resolved.ConfigPath)
	if err != nil {
		return err
	}
	asOf, err := parseAsOf(*asOfStr)
	if err != nil {
		return err
	}

	rows, store, err := buildHeatmapRows(resolved, asOf)
	if err != nil {
		return err
	}

	weekly := heatmap.BuildWeeklySummary(rows, asOf)
	hero := heatmap.BuildHeroSummary(store.Objectives())

	fmt.Fprintf(os.Stdout, "Week of %s (%s)\n", goalstore.WeekStart(asOf).Format("2006-01-02"), settings.FiscalQuarter(asOf))
	fmt.Fprintf(os.Stdout, "Key results: %d on track, %d at risk, %d off track, %d due this week\n",
		weekly.OnTrack, weekly.AtRisk, weekly.OffTrack, weekly.DueThisWeek)
	fmt.Fprintf(os.Stdout, "Objectives: %d total, avg %s, %d%% complete, %d at risk, avg score %s\n",
		hero.ObjectiveCount, settings.FormatPercent(hero.AvgProgress), hero.CompletionRate,
		hero.AtRiskObjectives, settings.FormatScore(hero.ScoreAverage))
	return nil
}

func runReportTeam(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("report team", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goalsDir := fs.String("goals-dir", "", "Path to goal YAML directory (default: <workspace>/goals)")
	configPath := fs.String("config", "", "Path to display config (default: <workspace>/config.yml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolved, err := resolveWorkspaceAndOverrides(workspacePath, workspaceOverrides{
		GoalsDir:   *goalsDir,
		ConfigPath: *configPath,
	})
	if err != nil {
		return err
	}
	settings, err := report.LoadSettings(resolved.ConfigPath)
	if err != nil {
		return err
	}

	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return err
	}

	for _, heat := range heatmap.BuildTeamHeatmap(store.Objectives()) {
		fmt.Fprintf(os.Stdout, "%-16s %4s  %-6s  %d members\n",
			heat.TeamID, settings.FormatPercent(heat.AvgProgress), heat.Light, heat.MemberCount)
	}
	return nil
}

// buildHeatmapRows loads the goal store and check-in history and produces
// the weekly heatmap rows for every key result.
func buildHeatmapRows(resolved *resolvedWorkspace, asOf time.Time) ([]heatmap.Row, *goalstore.Store, error) {
	store, err := goalstore.LoadFromDir(resolved.GoalsDir)
	if err != nil {
		return nil, nil, err
	}

	db, err := checkindb.Open(resolved.CheckinsDB)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	checkins, err := db.ListSince(asOf.AddDate(0, 0, -7*(heatmap.WeekCount-1)))
	if err != nil {
		return nil, nil, err
	}

	return heatmap.BuildHeatmap(store.KeyResults(), checkins, asOf), store, nil
}

const minimalGoalsTemplate = `objectives:
  - objective_id: OBJ-1
    title: Example company objective
    goal_type: company
    progress_type: automatic
    owner_id: you@example.com
    status: active
    key_results:
      - kr_id: KR-1
        title: Example key result
        weight: 60
        target: 100
        current: 0
      - kr_id: KR-2
        title: Another key result
        weight: 40
        target: 10
        current: 0
        unit: count
`

const minimalConfigTemplate = `# Display settings; the progress engine never reads these.
number_locale: en
fiscal_year_start_month: 1
scoring_scale: 1
`

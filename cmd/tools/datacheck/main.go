package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/f1-api/backend/internal/config"
	"github.com/zhouzirui/f1-api/backend/internal/service/dataset"
	"github.com/zhouzirui/f1-api/backend/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(2)
	}

	dir := flag.String("dir", cfg.Data.Dir, "数据文件目录 (默认取 DATA_DIR)")
	asJSON := flag.Bool("json", false, "以 JSON 输出检查报告")
	strict := flag.Bool("strict", false, "存在加载失败或 key 冲突时以非零状态退出")
	verbose := flag.Bool("v", false, "输出加载日志")
	flag.Parse()

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := telemetry.NewLogger(os.Stderr, "text", level)

	dataCfg := cfg.Data
	dataCfg.Dir = *dir
	store, report := dataset.Load(dataCfg.Dataset(), logger)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "输出失败: %v\n", err)
			os.Exit(2)
		}
	} else {
		fmt.Printf("season %d\n", store.Season())
		render(os.Stdout, report)
	}

	if *strict && !healthy(report) {
		os.Exit(1)
	}
}

// healthy reports whether every file loaded and no lookup keys collided.
func healthy(report dataset.Report) bool {
	for _, f := range report.Files {
		if !f.Loaded {
			return false
		}
	}
	return len(report.Collisions) == 0
}

func render(w io.Writer, report dataset.Report) {
	files := table.NewWriter()
	files.SetOutputMirror(w)
	files.SetStyle(table.StyleRounded)
	files.AppendHeader(table.Row{"file", "path", "loaded", "error"})
	for _, f := range report.Files {
		files.AppendRow(table.Row{f.Name, f.Path, f.Loaded, f.Error})
	}
	files.Render()

	counts := table.NewWriter()
	counts.SetOutputMirror(w)
	counts.SetStyle(table.StyleRounded)
	counts.AppendHeader(table.Row{"collection", "records"})
	counts.AppendRows([]table.Row{
		{"drivers", report.Counts.Drivers},
		{"constructors", report.Counts.Constructors},
		{"teams", report.Counts.Teams},
		{"races", report.Counts.Races},
	})
	counts.Render()

	if len(report.Collisions) == 0 {
		fmt.Fprintln(w, "no key collisions")
		return
	}

	collisions := table.NewWriter()
	collisions.SetOutputMirror(w)
	collisions.SetStyle(table.StyleRounded)
	collisions.AppendHeader(table.Row{"collection", "key", "kept", "dropped"})
	for _, c := range report.Collisions {
		collisions.AppendRow(table.Row{c.Collection, c.Key, c.Kept, c.Dropped})
	}
	collisions.Render()
}

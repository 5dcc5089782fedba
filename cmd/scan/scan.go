package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/tunes/cmd/common"
	"github.com/gigurra/tunes/cmd/library"
	"github.com/gigurra/tunes/cmd/table"
	pretty "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Params struct {
	Dir    string `pos:"true" optional:"true" help:"Music directory (default: music_dir from the config file)." default:""`
	Config string `short:"c" optional:"true" help:"Config file." default:""`
	JSON   bool   `long:"json" help:"Output as JSON"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "scan [dir]",
		Short: "List the tracks found in a directory",
		Long: `Scan a directory the same way the player does and print the tracks in
play order. Files whose tags cannot be read are counted but not listed.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runScan(cmd.Context(), params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "scan: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

type trackJSON struct {
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Number   uint32  `json:"number"`
	Total    uint32  `json:"total,omitempty"`
	Duration float64 `json:"duration_seconds"`
	Path     string  `json:"path"`
}

type resultJSON struct {
	Root   string      `json:"root"`
	Seen   int         `json:"seen"`
	Loaded int         `json:"loaded"`
	Tracks []trackJSON `json:"tracks"`
}

func runScan(ctx context.Context, params *Params, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dir := params.Dir
	if dir == "" {
		cfg, err := common.LoadConfigFile(params.Config)
		if err != nil {
			return err
		}
		dir = cfg.MusicDir
	}

	lib := library.New(dir, library.NewTagReader())
	seen, err := lib.Scan(ctx)
	if err != nil {
		return err
	}

	if params.JSON {
		return writeJSON(stdout, dir, seen, lib.Files())
	}
	renderTable(stdout, lib.Files(), table.TerminalWidth())
	fmt.Fprintf(stdout, "%d tracks loaded, %d files seen\n", lib.Len(), seen)
	return nil
}

func writeJSON(w io.Writer, root string, seen int, tracks []library.Track) error {
	out := resultJSON{
		Root:   root,
		Seen:   seen,
		Loaded: len(tracks),
		Tracks: make([]trackJSON, 0, len(tracks)),
	}
	for _, t := range tracks {
		out.Tracks = append(out.Tracks, trackJSON{
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Number:   t.Number.Number,
			Total:    t.Number.Total,
			Duration: t.Duration.Seconds(),
			Path:     t.Path,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderTable(w io.Writer, tracks []library.Track, width int) {
	t := pretty.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(pretty.StyleLight)
	t.SetAllowedRowLength(width)

	t.AppendHeader(pretty.Row{"#", "Title", "Artist", "Album", "Length"})
	for _, track := range tracks {
		t.AppendRow(pretty.Row{
			track.DisplayNumber(),
			track.DisplayTitle(),
			track.DisplayArtist(),
			track.DisplayAlbum(),
			library.FormatDuration(track.Duration),
		})
	}
	t.Render()
}

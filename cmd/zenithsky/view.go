package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/screen"
	"github.com/spacehole-rogue/zenith_sky/internal/sky"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [payload]",
		Short: "Open the interactive sky window",
		Long: "Open the interactive sky window for a JSON, YAML or TOML payload.\n" +
			"Each selected object is printed to stdout as one JSON line.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.payloadPath(args)
			payload, err := a.loadPayload(path)
			if err != nil {
				return err
			}

			var reloads <-chan world.Reload
			if path != "" && a.cfg.Data.Watch {
				w, err := world.NewWatcher(path, a.log.Named("watch"))
				if err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
				defer w.Stop()
				reloads = w.Reloads
			}

			return screen.Run(screen.Options{
				Config:   a.cfg,
				Payload:  payload,
				Reloads:  reloads,
				Logger:   a.log,
				Listener: selectionPrinter(cmd.OutOrStdout(), a.log),
			})
		},
	}
	cmd.Flags().Bool("watch", true, "reload the payload when the file changes")
	_ = a.v.BindPFlag("data.watch", cmd.Flags().Lookup("watch"))
	return cmd
}

// selectionEvent is the JSON line written for each selection.
type selectionEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Magnitude float64   `json:"magnitude"`
	Color     string    `json:"color"`
	At        time.Time `json:"at"`
}

func selectionPrinter(w io.Writer, log *zap.Logger) sky.SelectionListener {
	enc := json.NewEncoder(w)
	return func(s sky.Selection) {
		ev := selectionEvent{
			ID:        s.ID.String(),
			Name:      s.Object.Name,
			Type:      s.Object.Type.String(),
			Magnitude: s.Object.Magnitude,
			Color:     s.Object.HexColor,
			At:        s.At,
		}
		if err := enc.Encode(ev); err != nil {
			log.Warn("write selection", zap.Error(err))
		}
	}
}

package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Guy-Maoz/insights-deck-ai/internal/webui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <workbook.xlsx>",
	Short: "Serve the browser chat UI",
	Long: `Serve a web chat interface over the loaded workbook. Messages like
"market overview", "brand analysis Acme", or "competitive analysis Acme vs
Globex" trigger dashboard generation; the result renders next to the chat.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger("json")
		gen, err := newGenerator(log)
		if err != nil {
			return err
		}
		session, err := newSession(args[0], gen, log)
		if err != nil {
			return err
		}
		defer session.Close()

		addr := serveAddr
		if addr == "" && cfg != nil {
			addr = cfg.ServeAddr
		}
		if addr == "" {
			addr = ":8080"
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           webui.NewServer(session, log).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Info().Str("addr", addr).Int("brands", len(session.Catalog)).Msg("starting web UI")
		fmt.Printf("Serving on http://localhost%s\n", addr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

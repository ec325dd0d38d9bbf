package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/rf-radar/internal/config"
	"github.com/kartoza/rf-radar/internal/export"
	"github.com/kartoza/rf-radar/internal/pipeline"
	"github.com/kartoza/rf-radar/internal/server"
	"github.com/spf13/cobra"
	webview "github.com/webview/webview_go"
)

var version = "dev"

var (
	configFile  string
	port        int
	samplesDir  string
	headless    bool
	showVersion bool

	pngOut       string
	xlsxOut      string
	asciiHeight  int
	pngWidth     int
	pngHeight    int
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noteStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires the serve and render commands and their flags
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rf-radar",
		Short: "radar chart dashboard for pasted RF measurements",
		RunE:  runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	serveFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&port, "port", 0, "HTTP server port")
		cmd.Flags().StringVar(&samplesDir, "samples-dir", "", "directory containing sample .sqlite files")
		cmd.Flags().BoolVar(&headless, "headless", false, "run in headless mode (no GUI window)")
		cmd.Flags().BoolVar(&showVersion, "version", false, "show version and exit")
	}
	serveFlags(rootCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start the dashboard server",
		RunE:  runServe,

		SilenceUsage: true,
	}
	serveFlags(serveCmd)

	renderCmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "render a tab-separated file as a radar chart",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,

		SilenceUsage: true,
	}
	renderCmd.Flags().StringVar(&pngOut, "png", "", "write the chart as PNG to this path")
	renderCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write the chart as XLSX to this path")
	renderCmd.Flags().IntVar(&asciiHeight, "height", 12, "terminal plot height in rows")
	renderCmd.Flags().IntVar(&pngWidth, "png-width", 0, "PNG width in pixels (default from config)")
	renderCmd.Flags().IntVar(&pngHeight, "png-height", 0, "PNG height in pixels (default from config)")

	rootCmd.AddCommand(serveCmd, renderCmd)
	return rootCmd
}

// loadConfig reads the config file/environment and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	cfg.Version = version

	// validated after flag overrides
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("samples-dir") {
		cfg.SamplesDir = samplesDir
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headless
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Printf("RF Radar v%s\n", version)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Find an available port (try up to 10 ports starting from the requested one)
	availablePort, err := findAvailablePort(cfg.Port, 10)
	if err != nil {
		return fmt.Errorf("failed to find available port: %w", err)
	}
	if availablePort != cfg.Port {
		log.Printf("Port %d in use, using port %d instead", cfg.Port, availablePort)
	}
	cfg.Port = availablePort

	log.Printf("RF Radar v%s starting on port %d", version, cfg.Port)
	log.Printf("Samples directory: %s", cfg.SamplesDir)

	srv, err := server.New(*cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	waitForServer(serverURL, 10*time.Second)

	if cfg.Headless {
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-stop:
			log.Printf("Received %v signal, shutting down...", sig)
			if err := srv.Stop(); err != nil {
				log.Printf("Error during shutdown: %v", err)
			}
		}
		return nil
	}

	// GUI mode: open embedded WebView window
	log.Printf("Opening application window...")
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("RF Radar")
	w.SetSize(1100, 900, webview.HintNone)
	w.Navigate(serverURL)

	// When the webview window closes, shut down the server
	go func() {
		select {
		case err := <-errCh:
			if err != nil {
				log.Printf("Server error: %v", err)
			}
		case sig := <-stop:
			log.Printf("Received %v signal, shutting down...", sig)
			w.Terminate()
		}
	}()

	// Run blocks until the window is closed
	w.Run()

	log.Printf("Window closed, shutting down server...")
	if err := srv.Stop(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	raw, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	res := pipeline.Run(raw, true)
	out := cmd.OutOrStdout()
	if !res.OK() {
		fmt.Fprintln(out, errorStyle.Render(res.Message))
		return fmt.Errorf("%s", res.Kind)
	}

	fmt.Fprintln(out, titleStyle.Render(res.Figure.Title))
	fmt.Fprintln(out, export.ASCII(res.Figure, asciiHeight))
	fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("%d samples, radial range [0, %g]",
		res.Figure.Samples(), res.Figure.RadialAxis.Range[1])))

	if pngOut != "" {
		width, height := cfg.PNGWidth, cfg.PNGHeight
		if pngWidth > 0 {
			width = pngWidth
		}
		if pngHeight > 0 {
			height = pngHeight
		}
		data, err := export.PNG(res.Figure, width, height)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pngOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", pngOut, err)
		}
		fmt.Fprintln(out, noteStyle.Render("wrote "+pngOut))
	}

	if xlsxOut != "" {
		data, err := export.XLSX(res.Figure)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", xlsxOut, err)
		}
		fmt.Fprintln(out, noteStyle.Render("wrote "+xlsxOut))
	}

	return nil
}

// readInput reads the named file, or stdin when name is "-"
func readInput(name string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// waitForServer polls until the server is accepting connections
func waitForServer(url string, timeout time.Duration) {
	addr := url[len("http://"):]
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	log.Printf("Warning: server may not be ready at %s", url)
}

// findAvailablePort finds an available port, starting from the given port.
// If the port is in use, it tries subsequent ports up to maxAttempts times.
func findAvailablePort(startPort int, maxAttempts int) (int, error) {
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		addr := fmt.Sprintf(":%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port found after %d attempts starting from %d", maxAttempts, startPort)
}

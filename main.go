package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mediaport/mediaport/flickr"
	"github.com/mediaport/mediaport/googlephotos"
	"github.com/mediaport/mediaport/jobstore"
	"github.com/mediaport/mediaport/mediaportconfig"
	"github.com/mediaport/mediaport/transfer"
)

const mediaport = "mediaport"

func main() {
	setupLogging()

	var configPath string
	var config mediaportconfig.MediaportConfig

	rootCmd := cobra.Command{
		Use:   mediaport,
		Short: "Import photo batches into third-party photo services",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = mediaportconfig.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")

	importCmd := cobra.Command{
		Use:   "import",
		Short: "Import a photo container file into a vendor",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			vendor, err := cmd.Flags().GetString("to")
			if err != nil {
				fmt.Fprintln(os.Stderr, "error: invalid to flag:", err)
				os.Exit(1)
			}
			containerPath, err := cmd.Flags().GetString("file")
			if err != nil {
				fmt.Fprintln(os.Stderr, "error: invalid file flag:", err)
				os.Exit(1)
			}
			jobFlag, err := cmd.Flags().GetString("job")
			if err != nil {
				fmt.Fprintln(os.Stderr, "error: invalid job flag:", err)
				os.Exit(1)
			}

			if err := runImport(cmd.Context(), config, vendor, containerPath, jobFlag); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
		},
	}
	importCmd.Flags().String("to", "", "Destination vendor: flickr or googlephotos")
	importCmd.Flags().String("file", "", "Path to the photo container JSON file")
	importCmd.Flags().String("job", "", "Job id to resume; a new one is minted if empty")
	_ = importCmd.MarkFlagRequired("to")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(&importCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := charmlog.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	slog.SetDefault(slog.New(handler))
}

func runImport(ctx context.Context, config mediaportconfig.MediaportConfig, vendor, containerPath, jobFlag string) error {
	if err := config.ValidateFor(vendor); err != nil {
		return err
	}

	container, err := loadContainer(containerPath)
	if err != nil {
		return err
	}

	jobID := uuid.New()
	if jobFlag != "" {
		jobID, err = uuid.Parse(jobFlag)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", jobFlag, err)
		}
	}

	store, err := jobstore.Open(config.DefaultJobStorePath())
	if err != nil {
		return err
	}
	defer store.Close()

	var importer transfer.Importer
	var auth transfer.AuthData
	switch vendor {
	case "flickr":
		flickrImporter := flickr.NewImporter(config.Flickr.ApiKey, config.Flickr.ApiSecret, store)
		flickrImporter.Progress = newProgressBar(len(container.Photos))
		importer = flickrImporter
		auth = transfer.AuthData{
			AccessToken: config.Flickr.AccessToken,
			TokenSecret: config.Flickr.TokenSecret,
		}
	case "googlephotos":
		creds := googlephotos.Credentials{
			ClientID:     config.GooglePhotos.ClientId,
			ClientSecret: config.GooglePhotos.ClientSecret,
		}
		googleImporter := googlephotos.NewImporter(creds, config.GooglePhotos.DefaultAlbum, store)
		googleImporter.Progress = newProgressBar(len(container.Photos))
		importer = googleImporter
		auth = transfer.AuthData{
			AccessToken:  config.GooglePhotos.AccessToken,
			RefreshToken: config.GooglePhotos.RefreshToken,
		}
	default:
		return fmt.Errorf("unknown vendor %q", vendor)
	}

	slog.Info("starting import",
		slog.String("vendor", vendor),
		slog.String("job_id", jobID.String()),
		slog.Int("albums", len(container.Albums)),
		slog.Int("photos", len(container.Photos)))

	result, err := importer.ImportItem(ctx, jobID, auth, container)
	if err != nil {
		return err
	}
	if result.Type == transfer.ResultError {
		return fmt.Errorf("import failed: %s", result.Message)
	}

	fmt.Printf("Imported %d photos and %d albums to %s (job %s)\n",
		len(container.Photos), len(container.Albums), vendor, jobID)
	return nil
}

func loadContainer(path string) (*transfer.PhotosContainerResource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container file: %w", err)
	}
	defer f.Close()

	var container transfer.PhotosContainerResource
	if err := json.NewDecoder(f).Decode(&container); err != nil {
		return nil, fmt.Errorf("failed to decode container file %s: %w", path, err)
	}
	return &container, nil
}

func newProgressBar(total int) transfer.ProgressFunc {
	bar := progressbar.Default(int64(total), "Importing photos")
	return func(completed, total int) {
		_ = bar.Set(completed)
	}
}

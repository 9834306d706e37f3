package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/lorrc/kpi-dashboard/internal/adapters/secondary/postgres"
	"github.com/lorrc/kpi-dashboard/internal/config"
	apperrors "github.com/lorrc/kpi-dashboard/internal/core/errors"
	"github.com/lorrc/kpi-dashboard/internal/core/services"
	"github.com/lorrc/kpi-dashboard/internal/infrastructure/logging"
	"github.com/lorrc/kpi-dashboard/internal/platform/browser"
	"github.com/lorrc/kpi-dashboard/internal/report"
)

var (
	configPath = flag.String("config", config.DefaultPath, "Path to the key=value connection settings file")
	outputDir  = flag.String("out", ".", "Directory where the dated report is written")
	noOpen     = flag.Bool("no-open", false, "Skip opening the report in the default viewer")
)

func main() {
	flag.Parse()

	fmt.Println("🚀 Génération du tableau de bord KPI...")
	fmt.Println(strings.Repeat("=", 50))

	if err := run(); err != nil {
		reportFatal(err)
		waitForEnter()
		os.Exit(1)
	}

	fmt.Println("\n🎉 Terminé! Le tableau de bord s'ouvre dans votre navigateur.")
	waitForEnter()
}

func run() (err error) {
	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stderr,
		ServiceName: "kpi-dashboard",
	})

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "starting dashboard generation",
		"database", cfg.Database.String(),
	)

	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(logger, r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	interactive := isatty.IsTerminal(os.Stdout.Fd())

	// 3. Connect Database Pool (single attempt, no retry)
	var spin *spinner.Spinner
	if interactive {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " Connexion à la base de données..."
		spin.Start()
	}
	pool, connErr := pgxpool.New(ctx, cfg.Database.ConnString())
	if connErr == nil {
		connErr = pool.Ping(ctx)
	}
	if spin != nil {
		spin.Stop()
	}
	if connErr != nil {
		if pool != nil {
			pool.Close()
		}
		return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, connErr)
	}
	defer pool.Close()
	logger.InfoContext(ctx, "database connection established")

	// 4. Wire Source, Renderer and Service
	var bar *progressbar.ProgressBar
	if interactive {
		bar = progressbar.NewOptions(len(postgres.Catalog()),
			progressbar.OptionSetDescription("Exécution des requêtes KPI"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}
	progress := func(name string, rows int, qerr error) {
		if bar != nil {
			bar.Add(1)
		}
		if qerr != nil {
			fmt.Printf("❌ Erreur lors de l'exécution de %s: %v\n", name, qerr)
			return
		}
		fmt.Printf("✅ %s: %d lignes récupérées\n", name, rows)
	}

	source := postgres.NewKPIRepository(pool, logger, progress)
	svc := services.NewDashboardService(source, report.NewRenderer(), logger)

	// 5. Generate the dated report
	outputPath := filepath.Join(*outputDir, report.OutputFilename(time.Now()))
	result, err := svc.Generate(ctx, outputPath)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("✅ Tableau de bord généré avec succès!")
	fmt.Printf("📁 Fichier: %s\n", result.OutputPath)
	fmt.Printf("📊 Dossiers: %d\n", result.Dossiers)

	// 6. Best-effort viewer launch; failure never fails the run
	if !*noOpen {
		if openErr := browser.Open(result.OutputPath); openErr != nil {
			logger.WarnContext(ctx, "could not open report in viewer", "error", openErr)
		} else {
			fmt.Println("🌐 Le fichier va s'ouvrir automatiquement...")
		}
	}

	return nil
}

// reportFatal prints the user-facing diagnostic for each fatal branch. The
// config-missing case gets setup instructions rather than an error dump.
func reportFatal(err error) {
	switch {
	case errors.Is(err, apperrors.ErrConfigMissing):
		fmt.Println("❌ Fichier config.txt introuvable!")
		fmt.Println("📝 Créez un fichier config.txt avec vos paramètres de base de données:")
		fmt.Println("HOST=votre_serveur")
		fmt.Println("DATABASE=votre_base")
		fmt.Println("USER=votre_utilisateur")
		fmt.Println("PASSWORD=votre_mot_de_passe")
		fmt.Println("PORT=5432")
	case errors.Is(err, apperrors.ErrConnectionFailed):
		fmt.Printf("❌ Erreur de connexion à la base de données: %v\n", err)
	case errors.Is(err, apperrors.ErrNoData):
		fmt.Println("❌ Aucune donnée récupérée")
	default:
		fmt.Printf("❌ Erreur lors de la génération: %v\n", err)
	}
}

// waitForEnter blocks until the user acknowledges, so the terminal window
// does not vanish with the diagnostic. Skipped when stdin is not a terminal
// (cron-style runs).
func waitForEnter() {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return
	}
	fmt.Print("\n✋ Appuyez sur Entrée pour fermer...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}

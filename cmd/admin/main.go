// Command admin runs maintenance tasks against the admissions database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/bootstrap"
	"github.com/bathudi/admissions/internal/config"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/bathudi/admissions/internal/seed"
)

// env carries what every command needs
type env struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	lgr  zerolog.Logger
}

func setup(c *cli.Context) (*env, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return nil, err
	}
	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, pool: pool, lgr: lgr}, nil
}

// withEnv opens the config and database for the duration of one command
func withEnv(fn func(ctx context.Context, c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer e.pool.Close()
		if err := fn(c.Context, c, e); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}
}

func migrate(ctx context.Context, _ *cli.Context, e *env) error {
	applied, err := bootstrap.RunMigrations(ctx, e.cfg, e.pool, e.lgr)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
	return nil
}

func seedCourses(ctx context.Context, _ *cli.Context, e *env) error {
	repo := repositories.NewCourseRepository(e.pool)
	res, err := seed.SeedCourses(ctx, repo, seed.Catalog(), e.lgr)
	fmt.Printf("Created: %d  Updated: %d  Failed: %d\n", res.Created, res.Updated, res.Failed)
	return err
}

func createAdmin(ctx context.Context, c *cli.Context, e *env) error {
	deps, err := bootstrap.BuildDependencies(e.cfg, e.pool, e.lgr)
	if err != nil {
		return err
	}
	admin, created, err := deps.AuthService.EnsureAdmin(ctx, c.String("email"), c.String("password"), c.String("name"))
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created admin %s (id %d)\n", admin.Email, admin.ID)
	} else {
		fmt.Printf("Reset password of admin %s (id %d)\n", admin.Email, admin.ID)
	}
	return nil
}

func generateCoursePDFs(ctx context.Context, c *cli.Context, e *env) error {
	deps, err := bootstrap.BuildDependencies(e.cfg, e.pool, e.lgr)
	if err != nil {
		return err
	}
	n, err := deps.CourseService.GenerateOutlines(ctx, c.Bool("force"))
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d course outline(s)\n", n)
	return nil
}

func main() {
	app := &cli.App{
		Name:  "admin",
		Usage: "admissions maintenance tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations",
				Action: withEnv(migrate),
			},
			{
				Name:   "seed-courses",
				Usage:  "create or update the standard course catalog and requirements",
				Action: withEnv(seedCourses),
			},
			{
				Name:  "create-admin",
				Usage: "create an admin user, or reset the password of an existing one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, Usage: "at least 8 characters"},
					&cli.StringFlag{Name: "name", Usage: "full name"},
				},
				Action: withEnv(createAdmin),
			},
			{
				Name:  "generate-course-pdfs",
				Usage: "render outline PDFs for courses that have none",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "regenerate outlines for every course"},
				},
				Action: withEnv(generateCoursePDFs),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// Package compile implements the compile subcommand: it reads stylesheet
// sources (YAML rule trees) and writes the resulting CSS.
package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ghostandthemachine/garden/css"
	"github.com/ghostandthemachine/garden/state"
	"github.com/ghostandthemachine/garden/stylesheet"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if env.Options, err = styleOptions(env, cmd); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst), zap.Stringer("style", env.Options.Style))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// styleOptions combines configuration file values with command line
// overrides, flags win.
func styleOptions(env *state.LocalEnv, cmd *cli.Command) (css.Options, error) {
	opts, err := env.Cfg.Style.Options()
	if err != nil {
		return css.Options{}, err
	}
	if cmd.IsSet("style") {
		if opts.Style, err = css.ParseOutputStyle(cmd.String("style")); err != nil {
			return css.Options{}, err
		}
	}
	if cmd.IsSet("indent") {
		opts.IndentWidth = int(cmd.Int("indent"))
	}
	return opts, nil
}

// process handles the core compilation logic independently of CLI framework.
// A directory source is walked recursively, a file source is compiled on its
// own and goes to stdout when no destination was given.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		if len(dst) == 0 {
			if dst, err = os.Getwd(); err != nil {
				return fmt.Errorf("unable to get working directory: %w", err)
			}
		}
		return processDir(ctx, src, dst, log)
	}

	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if !isStylesheetFile(src) {
		return fmt.Errorf("input was not recognized as stylesheet source (%s)", src)
	}

	out := ""
	if len(dst) > 0 {
		out = outputPath(dst, filepath.Base(src))
	}
	return processFile(ctx, src, out, log)
}

// processDir walks directory tree finding stylesheet sources and compiles
// them, keeping the input directory structure under dst. Individual file
// failures do not stop the walk.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	var errs error
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isStylesheetFile(path) {
			log.Debug("Skipping file, not recognized as stylesheet source", zap.String("file", path))
			return nil
		}

		count++

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if er := processFile(ctx, path, outputPath(dst, rel), log); er != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(er))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, er))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return errs
}

// processFile compiles a single stylesheet source. When "out" is empty the
// result goes to stdout.
func processFile(ctx context.Context, path, out string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	log.Info("Compilation starting", zap.String("from", path))
	defer func(start time.Time) {
		log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", out))
	}(time.Now())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet source: %w", err)
	}

	rules, err := stylesheet.NewLoader(log).Load(data)
	if err != nil {
		return fmt.Errorf("unable to parse stylesheet source (%s): %w", path, err)
	}

	items := make([]any, len(rules))
	for i, r := range rules {
		items[i] = r
	}
	text, err := css.NewCompiler(env.Options, log).Compile(items...)
	if err != nil {
		return fmt.Errorf("unable to compile stylesheet (%s): %w", path, err)
	}
	if len(text) > 0 {
		text += "\n"
	}

	if len(out) == 0 {
		_, err = os.Stdout.WriteString(text)
		return err
	}

	if _, err := os.Stat(out); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", out)
		}
		log.Warn("Overwriting existing file", zap.String("file", out))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(out, []byte(text), 0644)
}

func isStylesheetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// outputPath derives the destination file name from the source path relative
// to the walk root, swapping the extension for ".css".
func outputPath(dst, rel string) string {
	ext := filepath.Ext(rel)
	return filepath.Join(dst, strings.TrimSuffix(rel, ext)+".css")
}

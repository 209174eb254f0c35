package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"smgmd/internal/cache"
	"smgmd/internal/config"
	"smgmd/internal/feed"
	"smgmd/internal/lang"
	"smgmd/internal/render"
)

func main() {
	// Diagnostics go to stderr; stdout carries only the markdown.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("smgmd", flag.ExitOnError)
	var (
		templateFlag string
		listFlag     bool
		urlFlag      string
		langFlag     string
		configFlag   string
		timeoutFlag  time.Duration
	)
	fs.StringVar(&templateFlag, "template", "", "template file to use (from the templates directory)")
	fs.StringVar(&templateFlag, "t", "", "shorthand for -template")
	fs.BoolVar(&listFlag, "list-templates", false, "list available templates and exit")
	fs.BoolVar(&listFlag, "l", false, "shorthand for -list-templates")
	fs.StringVar(&urlFlag, "url", "", "URL to fetch XML data from")
	fs.StringVar(&urlFlag, "u", "", "shorthand for -url")
	fs.StringVar(&langFlag, "lang", "", "language to use: zh, pt or en (overrides URL detection)")
	fs.StringVar(&configFlag, "config", "", "path to YAML configuration file")
	fs.DurationVar(&timeoutFlag, "timeout", 0, "fetch timeout (overrides configuration)")
	fs.Parse(args)

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	if listFlag {
		fmt.Fprintln(out, "Available templates:")
		for _, name := range render.List(cfg.TemplatesDir) {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		return nil
	}

	// Determine language and URL. An explicit -lang wins over URL
	// detection; an explicit -url is still the one fetched.
	var language lang.Language
	url := urlFlag
	switch {
	case langFlag != "":
		if language, err = lang.Parse(langFlag); err != nil {
			return err
		}
		if url == "" {
			url = cfg.SourceURL(language)
		}
	case url != "":
		language = lang.FromURL(url)
	default:
		if language, err = lang.Parse(cfg.DefaultLanguage); err != nil {
			return err
		}
		url = cfg.SourceURL(language)
	}

	name := templateFlag
	if name == "" {
		name = language.DefaultTemplate()
	}
	tmpl, err := render.Load(filepath.Join(cfg.TemplatesDir, name))
	if err != nil {
		log.Printf("Warning: template %q not usable (%v), using built-in default for %s",
			name, err, language.DisplayName())
		tmpl = render.Default(language)
	}

	timeout := timeoutFlag
	if timeout <= 0 {
		timeout = time.Duration(cfg.FetchTimeoutSec) * time.Second
	}
	client := feed.NewClient(cfg.UserAgent, timeout)

	var store feed.Cache
	if cfg.CachePath != "" {
		db, err := cache.Open(cfg.CachePath)
		if err != nil {
			log.Printf("Warning: feed cache unavailable: %v", err)
		} else {
			defer db.Close()
			store = db
		}
	}
	svc := feed.NewService(client, store, time.Duration(cfg.CacheTTLMins)*time.Minute)

	log.Printf("Fetching %s weather data from %s...", language.DisplayName(), url)
	doc, err := svc.GetDocument(url)
	if err != nil {
		return err
	}

	log.Printf("Generating markdown using template: %s", name)
	markdown, err := render.Render(doc, tmpl, language)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, markdown)
	return nil
}

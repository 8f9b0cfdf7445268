// registryctl es el cliente de línea de comandos del registro de caballos.
//
//	registryctl [-url URL] [-timeout 10s] <comando> [flags]
//
// Comandos: list, show, create, update, delete, tree, owners.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"horse-registry/internal/adapters/registryclient"
	"horse-registry/internal/pedigree"
	"horse-registry/internal/platform/config"
	"horse-registry/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "registryctl:", err)
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type app struct {
	client *registryclient.HorseClient
	editor *pedigree.Editor
	search *pedigree.SearchEngine
	out    io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, _ := config.Load()

	global := flag.NewFlagSet("registryctl", flag.ContinueOnError)
	baseURL := global.String("url", cfg.RegistryURL, "URL base del registro")
	timeout := global.Duration("timeout", cfg.HTTPTimeout, "timeout por request")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return fmt.Errorf("missing command: %w", flag.ErrHelp)
	}

	client, err := registryclient.New(*baseURL, *timeout)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: "registryctl", Output: os.Stderr})
	a := &app{
		client: client,
		editor: pedigree.NewEditor(client, log),
		search: pedigree.NewSearchEngine(client),
		out:    out,
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		return a.list(ctx, cmdArgs)
	case "show":
		return a.show(ctx, cmdArgs)
	case "create":
		return a.save(ctx, nil, cmdArgs)
	case "update":
		if len(cmdArgs) == 0 {
			return errors.New("update: missing horse id")
		}
		id, err := parseID(cmdArgs[0])
		if err != nil {
			return err
		}
		return a.save(ctx, &id, cmdArgs[1:])
	case "delete":
		id, err := singleID("delete", cmdArgs)
		if err != nil {
			return err
		}
		return a.editor.Delete(ctx, id)
	case "tree":
		return a.tree(ctx, cmdArgs)
	case "owners":
		return a.owners(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var c pedigree.Criteria
	fs.StringVar(&c.Name, "name", "", "substring del nombre")
	fs.StringVar(&c.Description, "description", "", "substring de la descripción")
	fs.StringVar(&c.BornBefore, "born-before", "", "nacidos antes de YYYY-MM-DD")
	fs.StringVar(&c.Sex, "sex", "", "female | male")
	fs.StringVar(&c.OwnerName, "owner", "", "substring del nombre del owner")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.search.Find(ctx, c)
	if err != nil {
		return err
	}
	return a.print(items)
}

// show carga el caballo como lo haría el formulario de edición: padres resueltos y candidatos.
func (a *app) show(ctx context.Context, args []string) error {
	id, err := singleID("show", args)
	if err != nil {
		return err
	}
	s, err := a.editor.LoadForEdit(ctx, id)
	if err != nil {
		return err
	}

	view := struct {
		Horse            pedigree.Horse `json:"horse"`
		FemaleCandidates int            `json:"femaleCandidates"`
		MaleCandidates   int            `json:"maleCandidates"`
		Unresolved       string         `json:"unresolved,omitempty"`
	}{
		Horse:            s.Horse,
		FemaleCandidates: len(s.Candidates.Female),
		MaleCandidates:   len(s.Candidates.Male),
	}
	if s.ResolveErr != nil {
		view.Unresolved = s.ResolveErr.Error()
	}
	return a.print(view)
}

// save da de alta (id nil) o reemplaza el registro completo.
func (a *app) save(ctx context.Context, id *int64, args []string) error {
	name := "create"
	if id != nil {
		name = "update"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var (
		horseName = fs.String("name", "", "nombre (requerido)")
		desc      = fs.String("description", "", "descripción")
		dob       = fs.String("dob", "", "fecha de nacimiento YYYY-MM-DD (requerido)")
		sex       = fs.String("sex", "", "female | male (requerido)")
		image     = fs.String("image", "", "URL de imagen")
		ownerID   = fs.Int64("owner", 0, "id del owner")
		motherID  = fs.Int64("mother", 0, "id de la madre")
		fatherID  = fs.Int64("father", 0, "id del padre")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var s *pedigree.EditSession
	var err error
	if id == nil {
		s, err = a.editor.NewSession(ctx)
	} else {
		s, err = a.editor.LoadForEdit(ctx, *id)
	}
	if err != nil {
		return err
	}

	h := pedigree.Horse{ID: id, Name: *horseName, Description: *desc, Image: *image}
	if h.DateOfBirth, err = pedigree.ParseDate(*dob); err != nil {
		return err
	}
	if h.Sex, err = pedigree.ParseSex(*sex); err != nil {
		return err
	}
	if *ownerID > 0 {
		h.Owner = &pedigree.Owner{ID: ownerID}
	}
	if h.ParentFemale, err = pickParent(s.Candidates.Female, *motherID); err != nil {
		return fmt.Errorf("mother: %w", err)
	}
	if h.ParentMale, err = pickParent(s.Candidates.Male, *fatherID); err != nil {
		return fmt.Errorf("father: %w", err)
	}
	s.Horse = h

	saved, err := a.editor.Save(ctx, s)
	if err != nil {
		return err
	}
	return a.print(saved)
}

func (a *app) tree(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	gens := fs.Int("generations", 0, "generaciones (1-10)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleID("tree", fs.Args())
	if err != nil {
		return err
	}
	h, err := a.client.FamilyTree(ctx, id, *gens)
	if err != nil {
		return err
	}
	return a.print(h)
}

func (a *app) owners(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("owners", flag.ContinueOnError)
	name := fs.String("name", "", "substring del nombre completo")
	limit := fs.Int("limit", 0, "máximo de resultados")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := a.client.Owners().Search(ctx, *name, *limit)
	if err != nil {
		return err
	}
	return a.print(items)
}

// pickParent elige el padre entre los candidatos del formulario. 0 = sin padre.
func pickParent(candidates []pedigree.Horse, id int64) (pedigree.ParentRef, error) {
	if id == 0 {
		return pedigree.NoParent(), nil
	}
	want := pedigree.Horse{ID: &id}
	for i := range candidates {
		if pedigree.Same(&candidates[i], &want) {
			return pedigree.ParentRecord(&candidates[i]), nil
		}
	}
	return pedigree.ParentRef{}, fmt.Errorf("%w: horse %d is not an eligible candidate", pedigree.ErrValidation, id)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func singleID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected exactly one horse id", cmd)
	}
	return parseID(args[0])
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid horse id %q", s)
	}
	return id, nil
}

// Cuisine: cook, inspect and eat composite wok dishes from the terminal.
//
// Usage:
//
//	cuisine [-config file] [-verbose] [-quiet] <command> [flags]
//
// Commands:
//
//	catalog   list registered materials (-csv for a CSV export)
//	cook      cook a dish: -i beef:diced,carrot:sliced -s salt:2,water:1 -out dish.bson
//	inspect   show a stored dish or builder: -in dish.bson [-path gjson-path]
//	eat       eat one serving of a stored dish: -in dish.bson (or - for stdin to stdout)
//	foreign   apply the hardcore food level rule to another food
//	config    write the effective configuration: -out cuisine.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"

	"github.com/hammamikhairi/cuisine/internal/catalog"
	"github.com/hammamikhairi/cuisine/internal/codec"
	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/display"
	"github.com/hammamikhairi/cuisine/internal/document"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/kitchen"
	"github.com/hammamikhairi/cuisine/internal/logger"
	"github.com/hammamikhairi/cuisine/internal/nutrition"
	"github.com/hammamikhairi/cuisine/internal/storage"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "YAML file overriding the built-in defaults")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	logLevel, ok := logger.ParseLevel(cfg.Log.Level)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}
	log := logger.New(logLevel, os.Stderr)
	if !ok {
		log.Warn("unknown log level %q, using %s", cfg.Log.Level, logLevel)
	}

	registry, err := catalog.Default(log)
	if err != nil {
		fatal(err)
	}

	app := &cliApp{
		cfg:      cfg,
		registry: registry,
		log:      log,
		out:      display.NewPrinter(os.Stdout),
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "catalog":
		err = app.catalog(rest)
	case "cook":
		err = app.cook(ctx, rest)
	case "inspect":
		err = app.inspect(rest)
	case "eat":
		err = app.eat(rest)
	case "foreign":
		err = app.foreign(rest)
	case "config":
		err = app.writeConfig(rest)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, display.RenderBanner(display.TerminalWidth(os.Stderr)))
	fmt.Fprintln(os.Stderr, "usage: cuisine [-config file] [-verbose] [-quiet] <catalog|cook|inspect|eat|foreign|config> [flags]")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

type cliApp struct {
	cfg      *config.Config
	registry *catalog.Registry
	log      *logger.Logger
	out      *display.Printer
}

// cliCook is the actor for every command; -skilled grants the bigger size
// skill.
type cliCook struct {
	skilled bool
}

func (c cliCook) ID() string { return "cli" }

func (c cliCook) HasLearnedSkill(actor domain.Actor, skill domain.SkillID) bool {
	return c.skilled && skill == domain.SkillBiggerSize
}

type cliVessel struct {
	kind domain.VesselKind
	pos  domain.Position
}

func (v cliVessel) Kind() domain.VesselKind   { return v.kind }
func (v cliVessel) Position() domain.Position { return v.pos }

func (a *cliApp) codec() *codec.Codec {
	return codec.New(a.registry, codec.WithBuilderOptions(dish.WithSettings(dish.SettingsFrom(a.cfg))))
}

func (a *cliApp) catalog(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	asCSV := fs.Bool("csv", false, "export materials as CSV")
	fs.Parse(args)

	if *asCSV {
		return a.registry.ExportMaterials(os.Stdout)
	}

	a.out.PrintHeader("Materials")
	for _, m := range a.registry.Materials() {
		a.out.Println(display.IngredientLine(domain.NewIngredient(m, domain.FormRaw)))
		a.out.PrintHint(fmt.Sprintf("heal %d, saturation %.2f, %s", m.BaseHeal(), m.SaturationModifier(), formNames(m.ValidForms())))
	}
	a.out.PrintHeader("Spices")
	for _, s := range a.registry.Spices() {
		line := s.ID()
		if kw := s.Keywords(); len(kw) > 0 {
			line += " (" + strings.Join(kw, ", ") + ")"
		}
		a.out.PrintHint(line)
	}
	return nil
}

func (a *cliApp) cook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cook", flag.ExitOnError)
	vesselName := fs.String("vessel", "wok", "vessel kind (wok, pot, steamer)")
	skilled := fs.Bool("skilled", false, "cook with the bigger size skill")
	items := fs.String("i", "", "ingredients as material:form, comma separated")
	spices := fs.String("s", "", "seasonings as spice:size, comma separated")
	outPath := fs.String("out", "", "write the finished dish here")
	fs.Parse(args)

	kind, ok := domain.VesselKindFromString(*vesselName)
	if !ok {
		return fmt.Errorf("unknown vessel %q", *vesselName)
	}
	actor := cliCook{skilled: *skilled}

	dishes := storage.NewMemoryDishStore(a.log)
	k := kitchen.New(a.registry, storage.NewMemoryStore(a.log), dishes, a.log,
		kitchen.WithBuilderOptions(
			dish.WithSettings(dish.SettingsFrom(a.cfg)),
			dish.WithSkills(actor),
		),
	)

	session, err := k.Open(ctx, cliVessel{kind: kind})
	if err != nil {
		return err
	}

	for _, item := range splitArgs(*items) {
		id, formName, _ := strings.Cut(item, ":")
		form := domain.FormRaw
		if formName != "" {
			if form, ok = domain.FormFromString(formName); !ok {
				a.out.PrintUrgent(fmt.Sprintf("unknown form %q for %s", formName, id))
				continue
			}
		}
		if err := k.AddIngredient(ctx, session.ID, id, form, actor); err != nil {
			a.out.PrintUrgent(err.Error())
		}
	}
	for _, item := range splitArgs(*spices) {
		id, sizeText, _ := strings.Cut(item, ":")
		size := 1
		if sizeText != "" {
			if size, err = strconv.Atoi(sizeText); err != nil {
				a.out.PrintUrgent(fmt.Sprintf("bad size %q for %s", sizeText, id))
				continue
			}
		}
		if err := k.AddSeasoning(ctx, session.ID, id, size, actor); err != nil {
			a.out.PrintUrgent(err.Error())
		}
	}

	b, err := k.Builder(ctx, session.ID)
	if err != nil {
		return err
	}
	a.out.Println(display.BuilderCard(b, actor))

	dishID, d, err := k.Finish(ctx, session.ID, actor)
	if errors.Is(err, domain.ErrEmptyDish) {
		return fmt.Errorf("nothing made it into the %s", kind)
	}
	if err != nil {
		return err
	}
	a.out.Println(display.Card(d))

	if *outPath == "" {
		return nil
	}
	data, err := dishes.Get(ctx, dishID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing dish: %w", err)
	}
	a.out.PrintHint(fmt.Sprintf("saved %s to %s", dishID, *outPath))
	return nil
}

func (a *cliApp) inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	inPath := fs.String("in", "", "dish or builder file to read")
	path := fs.String("path", "", "gjson path to print instead of the card")
	asJSON := fs.Bool("json", false, "print the whole document as JSON")
	fs.Parse(args)

	data, err := readInput(*inPath)
	if err != nil {
		return err
	}
	doc, err := document.Unmarshal(data)
	if err != nil {
		return err
	}

	if *path != "" || *asJSON {
		js, err := document.MarshalJSON(doc)
		if err != nil {
			return err
		}
		if *asJSON {
			a.out.Println(string(js))
			return nil
		}
		res := gjson.GetBytes(js, *path)
		if !res.Exists() {
			return fmt.Errorf("path %q: %w", *path, domain.ErrNotFound)
		}
		a.out.Println(res.String())
		return nil
	}

	f, err := a.codec().Unwrap(doc)
	if err != nil {
		return err
	}
	switch f := f.(type) {
	case *dish.Dish:
		a.out.Println(display.Card(f))
	case *dish.Builder:
		a.out.Println(display.BuilderCard(f, cliCook{}))
	}
	return nil
}

func (a *cliApp) eat(args []string) error {
	fs := flag.NewFlagSet("eat", flag.ExitOnError)
	inPath := fs.String("in", "", "dish file to eat from; it is rewritten with one serving less (- pipes stdin to stdout)")
	fs.Parse(args)

	// Piped dishes go back out on stdout, so messages move to stderr.
	out := a.out
	if stdio(*inPath) {
		out = display.NewPrinter(os.Stderr)
	}

	data, err := readInput(*inPath)
	if err != nil {
		return err
	}
	c := a.codec()
	f, err := c.Unmarshal(data)
	if err != nil {
		return err
	}
	d, ok := f.(*dish.Dish)
	if !ok {
		return errors.New("that dish is still cooking")
	}

	meal, err := d.Eat(cliCook{}, a.cfg.Hardcore, a.registry)
	if err != nil {
		return err
	}
	out.PrintHeader(fmt.Sprintf("+%d food, %.2f saturation", meal.FoodLevel, meal.Saturation))
	for _, e := range meal.Effects {
		out.PrintHint(e.Name)
	}
	for _, p := range meal.Punishments {
		out.PrintUrgent(fmt.Sprintf("%s for %d ticks", p.Effect.Name, p.Duration))
	}

	eaten, err := c.Marshal(d)
	if err != nil {
		return err
	}
	if err := writeOutput(*inPath, eaten, os.Stdout); err != nil {
		return fmt.Errorf("writing dish: %w", err)
	}
	out.PrintHint(fmt.Sprintf("%d/%d serves left", d.Serves(), d.MaxServes()))
	return nil
}

func (a *cliApp) foreign(args []string) error {
	fs := flag.NewFlagSet("foreign", flag.ExitOnError)
	id := fs.String("id", "", "food identifier")
	level := fs.Int("level", 0, "food level the food restores")
	sat := fs.Float64("saturation", 0, "saturation modifier of the food")
	fs.Parse(args)

	if *id == "" {
		return errors.New("foreign: -id is required")
	}
	gotLevel, gotSat := nutrition.AdjustForeign(a.cfg.Hardcore, *id, *level, float32(*sat))
	a.out.Println(fmt.Sprintf("%s: food %d -> %d, saturation %.2f -> %.2f", *id, *level, gotLevel, *sat, gotSat))
	return nil
}

func (a *cliApp) writeConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	outPath := fs.String("out", "cuisine.yaml", "file to write")
	fs.Parse(args)

	if err := a.cfg.WriteYAML(*outPath); err != nil {
		return err
	}
	a.out.PrintHint("wrote " + *outPath)
	return nil
}

// stdio reports whether path names the standard streams.
func stdio(path string) bool { return path == "" || path == "-" }

func readInput(path string) ([]byte, error) {
	if stdio(path) {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout when path names the
// standard streams.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if stdio(path) {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func splitArgs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formNames(set domain.FormSet) string {
	forms := set.List()
	names := make([]string, len(forms))
	for i, f := range forms {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}

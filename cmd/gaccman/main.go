package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/config"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/export"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/i18n"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/importer"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/password"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/service"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/store"
	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/totp"
)

var version = "dev"

const usage = `usage: gaccman [-config path] <command> [options]

commands:
  list       show accounts, optionally filtered by group
  add        add an account
  delete     move an account to trash (or delete permanently)
  trash      list, restore, delete or empty trashed accounts
  import     import accounts from a separated text file
  code       print the current two-factor code for an account
  watch      continuously print codes as they rotate
  groups     manage account groups
  libraries  manage account libraries
  archive    create, list and restore state archives
  export     write or read passphrase-encrypted exports
  genpass    generate a random password
  version    print version and exit
`

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 && args[0] == "version" {
		fmt.Println(version)
		return
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log := newLogger(conf.Logger.Level)
	defer log.Sync()

	app, err := newApp(conf, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := app.run(args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// app wires storage, services and translation for one invocation.
type app struct {
	conf *config.Config
	log  *zap.Logger
	tr   *i18n.Translator

	libs     *store.LibraryStore
	backups  *store.Snapshots
	archives *store.Snapshots
	exporter *export.Exporter
	imp      *importer.Importer
	gen      *totp.Generator

	lib      store.LibraryInfo
	state    *model.State
	accounts *service.AccountService
	groups   *service.GroupService
}

func newApp(conf *config.Config, log *zap.Logger) (*app, error) {
	libs := store.NewLibraryStore(conf.Storage.DataDir, conf.Storage.LegacyFile, log)
	if err := libs.Initialize(); err != nil {
		return nil, err
	}
	lib, err := libs.Current()
	if err != nil {
		return nil, err
	}

	state := libs.LoadState(lib)
	lang := conf.Language
	if state.Language != "" {
		lang = state.Language
	}

	events := service.NewNotifier()
	clock := totp.NewNetworkClock(conf.Time.Source, conf.Time.SyncInterval, log)

	return &app{
		conf:     conf,
		log:      log,
		tr:       i18n.New(lang, log),
		libs:     libs,
		backups:  store.NewBackups(conf.Backup.Dir, conf.Backup.Retention, log),
		archives: store.NewArchives(conf.Archive.Dir, conf.Archive.Retention, conf.Archive.Compress, log),
		exporter: export.New(log),
		imp:      importer.New(log),
		gen:      totp.NewGenerator(clock, log),
		lib:      lib,
		state:    state,
		accounts: service.NewAccountService(state, events, log),
		groups:   service.NewGroupService(state, events, log),
	}, nil
}

// save backs up the current library file and writes the new state.
func (a *app) save() error {
	if _, err := a.backups.CopyFile(a.libs.FilePath(a.lib)); err != nil {
		a.log.Warn("backup before save failed", zap.Error(err))
	}
	return a.libs.SaveState(a.lib, a.state)
}

func (a *app) run(args []string) error {
	cmd := "list"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "list":
		return a.cmdList(args)
	case "add":
		return a.cmdAdd(args)
	case "delete":
		return a.cmdDelete(args)
	case "trash":
		return a.cmdTrash(args)
	case "import":
		return a.cmdImport(args)
	case "code":
		return a.cmdCode(args)
	case "watch":
		return a.cmdWatch(args)
	case "groups":
		return a.cmdGroups(args)
	case "libraries":
		return a.cmdLibraries(args)
	case "archive":
		return a.cmdArchive(args)
	case "export":
		return a.cmdExport(args)
	case "genpass":
		return a.cmdGenpass(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	group := fs.String("group", "", "only accounts in this group (\"none\" for ungrouped)")
	full := fs.Bool("full", false, "include passwords and secrets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	accounts := a.state.Accounts
	switch *group {
	case "":
	case "none":
		accounts = a.state.UngroupedAccounts()
	default:
		accounts = a.state.AccountsInGroup(*group)
	}
	printAccounts(accounts, *full)
	return nil
}

func printAccounts(accounts []model.Account, full bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if full {
		fmt.Fprintln(w, "ID\tEMAIL\tPASSWORD\tBACKUP\tSECRET\tGROUPS\tIMPORTED")
		for _, acc := range accounts {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				acc.ID, acc.Email, acc.Password, acc.Backup, acc.Secret,
				strings.Join(acc.Groups, ","), acc.ImportTime)
		}
		return
	}
	fmt.Fprintln(w, "ID\tEMAIL\t2FA\tGROUPS")
	for _, acc := range accounts {
		has2fa := ""
		if acc.Has2FA() {
			has2fa = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acc.ID, acc.Email, has2fa, strings.Join(acc.Groups, ","))
	}
}

func (a *app) cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	pass := fs.String("password", "", "account password")
	backup := fs.String("backup", "", "backup email")
	secret := fs.String("secret", "", "two-factor secret")
	notes := fs.String("notes", "", "free-form notes")
	groupList := fs.String("groups", "", "comma-separated group names")
	force := fs.Bool("force", false, "add even when the email already exists")
	generate := fs.Bool("generate", false, "generate a random password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("add: -email is required")
	}
	if !importer.ValidateEmail(*email) {
		return fmt.Errorf("add: %q is not a valid email", *email)
	}
	if *generate {
		*pass = password.Generate(password.DefaultLength, password.Options{})
		fmt.Println("generated password:", *pass)
	}

	account := model.NewAccount(*email, *pass, *backup, totp.NormalizeSecret(*secret))
	account.Notes = *notes
	account.ImportTime = time.Now().Format(model.ImportTimeLayout)
	for _, name := range splitList(*groupList) {
		account.AddToGroup(name)
	}

	added, err := a.accounts.Add(account, !*force)
	if errors.Is(err, service.ErrDuplicateAccount) {
		return errors.New(a.tr.TWithData("account_duplicate", map[string]interface{}{"Email": *email}))
	}
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Println(a.tr.TWithData("account_added", map[string]interface{}{"Email": added.Email}))
	return nil
}

func (a *app) cmdDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	email := fs.String("email", "", "delete by email")
	id := fs.Int("id", 0, "delete by id")
	permanent := fs.Bool("permanent", false, "skip the trash")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var removed model.Account
	var ok bool
	switch {
	case *email != "":
		removed, ok = a.accounts.DeleteByEmail(*email, !*permanent)
	case *id > 0:
		removed, ok = a.accounts.Delete(*id, !*permanent)
	default:
		return errors.New("delete: -email or -id is required")
	}
	if !ok {
		return errors.New(a.tr.TWithData("account_not_found",
			map[string]interface{}{"Query": firstNonEmpty(*email, strconv.Itoa(*id))}))
	}
	if err := a.save(); err != nil {
		return err
	}

	msg := "account_deleted"
	if *permanent {
		msg = "account_purged"
	}
	fmt.Println(a.tr.TWithData(msg, map[string]interface{}{"Email": removed.Email}))
	return nil
}

func (a *app) cmdTrash(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		printAccounts(a.state.Trash, false)
		return nil
	case "restore", "delete":
		fs := flag.NewFlagSet("trash "+sub, flag.ContinueOnError)
		id := fs.Int("id", 0, "account id (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id <= 0 {
			return errors.New("trash " + sub + ": -id is required")
		}

		var account model.Account
		var ok bool
		msg := "account_restored"
		if sub == "restore" {
			account, ok = a.accounts.RestoreFromTrash(*id)
		} else {
			account, ok = a.accounts.DeleteFromTrash(*id)
			msg = "account_purged"
		}
		if !ok {
			return errors.New(a.tr.TWithData("account_not_found",
				map[string]interface{}{"Query": strconv.Itoa(*id)}))
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData(msg, map[string]interface{}{"Email": account.Email}))
		return nil
	case "empty":
		count := a.accounts.EmptyTrash()
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TPlural("trash_emptied", count))
		return nil
	default:
		return fmt.Errorf("trash: unknown subcommand %q", sub)
	}
}

func (a *app) cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "path to the import file (required)")
	sep := fs.String("separator", "", "field separator (auto-detected when empty)")
	group := fs.String("group", "", "add imported accounts to this group")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("import: -file is required")
	}

	parsed, err := a.imp.ParseFile(*file, *sep)
	if err != nil {
		return err
	}

	now := time.Now().Format(model.ImportTimeLayout)
	added, skipped := 0, 0
	for _, account := range parsed {
		account.ImportTime = now
		account.Secret = totp.NormalizeSecret(account.Secret)
		if *group != "" {
			account.AddToGroup(*group)
		}
		if _, err := a.accounts.Add(account, true); err != nil {
			skipped++
			continue
		}
		added++
	}
	if *group != "" && added > 0 {
		if a.state.GroupByName(*group) == nil {
			if _, err := a.groups.Create(*group, model.DefaultColor); err != nil {
				return err
			}
		}
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Println(a.tr.TWithData("import_summary",
		map[string]interface{}{"Added": added, "Skipped": skipped}))
	return nil
}

func (a *app) findAccount(email string, id int) (*model.Account, error) {
	var account *model.Account
	if email != "" {
		account = a.accounts.FindByEmail(email)
	} else if id > 0 {
		account = a.accounts.FindByID(id)
	} else {
		return nil, errors.New("-email or -id is required")
	}
	if account == nil {
		return nil, errors.New(a.tr.TWithData("account_not_found",
			map[string]interface{}{"Query": firstNonEmpty(email, strconv.Itoa(id))}))
	}
	return account, nil
}

func (a *app) cmdCode(args []string) error {
	fs := flag.NewFlagSet("code", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	id := fs.Int("id", 0, "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := a.findAccount(*email, *id)
	if err != nil {
		return err
	}
	if !account.Has2FA() {
		return errors.New(a.tr.TWithData("no_secret", map[string]interface{}{"Email": account.Email}))
	}

	code, err := a.gen.Generate(account.Secret)
	if err != nil {
		return err
	}
	fmt.Println(a.tr.TWithData("code_expires",
		map[string]interface{}{"Code": code, "Count": a.gen.Remaining()}))
	return nil
}

func (a *app) cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	id := fs.Int("id", 0, "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := a.findAccount(*email, *id)
	if err != nil {
		return err
	}
	if !account.Has2FA() {
		return errors.New(a.tr.TWithData("no_secret", map[string]interface{}{"Email": account.Email}))
	}

	printCode := func() {
		code, ok := a.gen.GenerateSafe(account.Secret)
		if !ok {
			return
		}
		fmt.Printf("\r%s  %s  %2ds ", account.Email, code, a.gen.Remaining())
	}
	printCode()
	for range time.Tick(1 * time.Second) {
		printCode()
	}
	return nil
}

func (a *app) cmdGroups(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOLOR\tACCOUNTS")
		for _, g := range a.groups.Groups() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", g.Name, g.Color, len(a.state.AccountsInGroup(g.Name)))
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("groups add", flag.ContinueOnError)
		name := fs.String("name", "", "group name (required)")
		color := fs.String("color", model.DefaultColor, "group color")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("groups add: -name is required")
		}
		group, err := a.groups.Create(*name, *color)
		if err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("group_created", map[string]interface{}{"Name": group.Name}))
		return nil
	case "delete":
		fs := flag.NewFlagSet("groups delete", flag.ContinueOnError)
		name := fs.String("name", "", "group name (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if _, ok := a.groups.Delete(*name); !ok {
			return fmt.Errorf("groups delete: no group named %q", *name)
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("group_deleted", map[string]interface{}{"Name": *name}))
		return nil
	case "undo":
		group, ok := a.groups.UndoDelete()
		if !ok {
			return errors.New("groups undo: nothing to undo")
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("group_restored", map[string]interface{}{"Name": group.Name}))
		return nil
	case "rename":
		fs := flag.NewFlagSet("groups rename", flag.ContinueOnError)
		from := fs.String("from", "", "current name (required)")
		to := fs.String("to", "", "new name (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if !a.groups.Rename(*from, *to) {
			return fmt.Errorf("groups rename: no group named %q", *from)
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("group_renamed", map[string]interface{}{"Old": *from, "New": *to}))
		return nil
	case "color":
		fs := flag.NewFlagSet("groups color", flag.ContinueOnError)
		name := fs.String("name", "", "group name (required)")
		color := fs.String("color", "", "new color (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if !a.groups.UpdateColor(*name, *color) {
			return fmt.Errorf("groups color: no group named %q", *name)
		}
		return a.save()
	case "assign", "unassign":
		fs := flag.NewFlagSet("groups "+sub, flag.ContinueOnError)
		name := fs.String("name", "", "group name (required)")
		idList := fs.String("ids", "", "comma-separated account ids (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		ids, err := parseIDs(*idList)
		if err != nil {
			return err
		}
		var count int
		if sub == "assign" {
			count = a.groups.AddAccountsToGroup(ids, *name)
		} else {
			count = a.groups.RemoveAccountsFromGroup(ids, *name)
		}
		if err := a.save(); err != nil {
			return err
		}
		fmt.Printf("%d account(s) updated\n", count)
		return nil
	default:
		return fmt.Errorf("groups: unknown subcommand %q", sub)
	}
}

func (a *app) cmdLibraries(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCURRENT")
		for _, lib := range a.libs.List() {
			current := ""
			if lib.ID == a.lib.ID {
				current = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", lib.ID, lib.Name, current)
		}
		return w.Flush()
	case "create":
		fs := flag.NewFlagSet("libraries create", flag.ContinueOnError)
		name := fs.String("name", "", "library name (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("libraries create: -name is required")
		}
		lib, err := a.libs.Create(*name)
		if err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("library_created", map[string]interface{}{"Name": lib.Name}))
		return nil
	case "switch":
		fs := flag.NewFlagSet("libraries switch", flag.ContinueOnError)
		id := fs.String("id", "", "library id (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		lib, err := a.libs.Switch(*id)
		if err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("library_switched", map[string]interface{}{"Name": lib.Name}))
		return nil
	case "rename":
		fs := flag.NewFlagSet("libraries rename", flag.ContinueOnError)
		id := fs.String("id", "", "library id (required)")
		name := fs.String("name", "", "new name (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if _, err := a.libs.Rename(*id, *name); err != nil {
			return err
		}
		return nil
	case "delete":
		fs := flag.NewFlagSet("libraries delete", flag.ContinueOnError)
		id := fs.String("id", "", "library id (required)")
		keep := fs.Bool("keep-file", false, "keep the state file on disk")
		if err := fs.Parse(args); err != nil {
			return err
		}
		lib, err := a.libs.Get(*id)
		if err != nil {
			return err
		}
		if _, err := a.libs.Delete(*id, *keep); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("library_deleted", map[string]interface{}{"Name": lib.Name}))
		return nil
	case "up", "down":
		fs := flag.NewFlagSet("libraries "+sub, flag.ContinueOnError)
		id := fs.String("id", "", "library id (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		direction := -1
		if sub == "down" {
			direction = 1
		}
		return a.libs.Reorder(*id, direction)
	default:
		return fmt.Errorf("libraries: unknown subcommand %q", sub)
	}
}

func (a *app) cmdArchive(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tCREATED\tACCOUNTS\tGROUPS")
		for _, info := range a.archives.List() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", info.Filename,
				info.Timestamp.Format("2006-01-02 15:04:05"), info.AccountCount, info.GroupCount)
		}
		return w.Flush()
	case "create":
		info, err := a.archives.Write(a.state)
		if err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("archive_created", map[string]interface{}{"Filename": info.Filename}))
		return nil
	case "restore":
		fs := flag.NewFlagSet("archive restore", flag.ContinueOnError)
		file := fs.String("file", "", "archive filename (required, see archive list)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *file == "" {
			return errors.New("archive restore: -file is required")
		}
		restored, err := a.archives.Read(*file)
		if err != nil {
			return err
		}
		a.state = restored
		if err := a.save(); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("archive_restored", map[string]interface{}{"Filename": *file}))
		return nil
	case "delete":
		fs := flag.NewFlagSet("archive delete", flag.ContinueOnError)
		file := fs.String("file", "", "archive filename (required)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.archives.Delete(*file)
	default:
		return fmt.Errorf("archive: unknown subcommand %q", sub)
	}
}

func (a *app) cmdExport(args []string) error {
	sub := "write"
	if len(args) > 0 && (args[0] == "write" || args[0] == "read") {
		sub = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("export "+sub, flag.ContinueOnError)
	file := fs.String("file", "", "export file path (required)")
	passphrase := fs.String("passphrase", "", "export passphrase (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" || *passphrase == "" {
		return errors.New("export: -file and -passphrase are required")
	}

	if sub == "write" {
		if err := a.exporter.SealToFile(a.state, *passphrase, *file); err != nil {
			return err
		}
		fmt.Println(a.tr.TWithData("export_written", map[string]interface{}{"Path": *file}))
		return nil
	}

	imported, err := a.exporter.OpenFile(*file, *passphrase)
	if err != nil {
		return err
	}
	count := 0
	for _, account := range imported.Accounts {
		account.ID = 0
		if _, err := a.accounts.Add(account, true); err == nil {
			count++
		}
	}
	for _, group := range imported.Groups {
		if a.state.GroupByName(group.Name) == nil {
			if _, err := a.groups.Create(group.Name, group.Color); err != nil {
				return err
			}
		}
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Println(a.tr.TPlural("export_imported", count))
	return nil
}

func (a *app) cmdGenpass(args []string) error {
	fs := flag.NewFlagSet("genpass", flag.ContinueOnError)
	length := fs.Int("length", password.DefaultLength, "password length")
	noUpper := fs.Bool("no-upper", false, "exclude uppercase letters")
	noDigits := fs.Bool("no-digits", false, "exclude digits")
	noSpecial := fs.Bool("no-special", false, "exclude special characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	generated := password.Generate(*length, password.Options{
		NoUpper:   *noUpper,
		NoDigits:  *noDigits,
		NoSpecial: *noSpecial,
	})
	score, _, label := password.Strength(generated)
	fmt.Printf("%s  (%s, %d/100)\n", generated, label, score)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range splitList(s) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid account id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("-ids is required")
	}
	return ids, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

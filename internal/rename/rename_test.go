package rename

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jref/internal/backup"
	"jref/internal/config"
	jreferrors "jref/internal/errors"
	"jref/internal/sourcefile"
	"jref/internal/testutil"
)

const accountJava = `package com.example.model;

public class Account {
    private long balance;

    public void touch() {
    }
}
`

const walletJava = `package com.example.model;

public class Wallet {
    private long balance;

    public void touch() {
    }
}
`

const ledgerJava = `package com.example.model;

public class Ledger {
    private Account account;

    public void process(Account account) {
        account.touch();
        this.account = account;
    }
}
`

const ledgerWant = `package com.example.model;

public class Ledger {
    private Wallet wallet;

    public void process(Wallet wallet) {
        wallet.touch();
        this.wallet = wallet;
    }
}
`

const mainJava = `package com.example.app;

import com.example.model.Account;

public class Main {
    public static void main(String[] args) {
        Account account = new Account();
        account.touch();
    }
}
`

const mainWant = `package com.example.app;

import com.example.model.Wallet;

public class Main {
    public static void main(String[] args) {
        Wallet wallet = new Wallet();
        wallet.touch();
    }
}
`

const reporterJava = `package com.example.app;

import com.example.model.*;

public class Reporter {
    private Account account;
}
`

const reporterWant = `package com.example.app;

import com.example.model.*;

public class Reporter {
    private Wallet wallet;
}
`

const registryJava = `package com.example.model;

import java.util.List;

public class Registry {
    private List<Account> accounts;

    public void add(Account account) {
        accounts.add(account);
    }
}
`

const registryWant = `package com.example.model;

import java.util.List;

public class Registry {
    private List<Wallet> wallets;

    public void add(Wallet wallet) {
        wallets.add(wallet);
    }
}
`

const holderJava = `package com.example.model;

public class Holder {
    private Account helper;
}
`

const holderWant = `package com.example.model;

public class Holder {
    private Wallet helper;
}
`

const otherJava = `package com.example.other;

public class Other {
    private Account account;
}
`

// cursorAt finds the line and column NodeAt needs to land inside the
// first occurrence of name in content.
func cursorAt(t *testing.T, content, name string) (int, int) {
	t.Helper()
	idx := strings.Index(content, name)
	if idx < 0 {
		t.Fatalf("%q not found in fixture", name)
	}
	line := 1 + strings.Count(content[:idx], "\n")
	lineStart := strings.LastIndex(content[:idx], "\n") + 1
	col := idx - lineStart
	if col == 0 {
		col = 1
	}
	return line, col
}

func newEngine(p *testutil.Project) *Engine {
	return New(p.Root, nil, nil, nil, nil, nil)
}

func modelProject(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/model/Account.java", accountJava)
	p.WriteSource(t, "com/example/model/Ledger.java", ledgerJava)
	p.WriteSource(t, "com/example/model/Registry.java", registryJava)
	p.WriteSource(t, "com/example/model/Holder.java", holderJava)
	p.WriteSource(t, "com/example/app/Main.java", mainJava)
	p.WriteSource(t, "com/example/app/Reporter.java", reporterJava)
	p.WriteSource(t, "com/example/other/Other.java", otherJava)
	return p
}

func renameAccount(t *testing.T, p *testutil.Project, e *Engine, dryRun bool) (*Report, error) {
	t.Helper()
	line, col := cursorAt(t, accountJava, "Account")
	return e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/model/Account.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Wallet",
		DryRun:     dryRun,
	})
}

func TestClassRenameAcrossProject(t *testing.T) {
	p := modelProject(t)
	e := newEngine(p)

	rep, err := renameAccount(t, p, e, false)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.State != StateApplied || rep.Outcome != OutcomeApplied {
		t.Errorf("state = %s outcome = %s, want applied", rep.State, rep.Outcome)
	}

	if p.HasSource("com/example/model/Account.java") {
		t.Error("Account.java still exists after rename")
	}
	for rel, want := range map[string]string{
		"com/example/model/Wallet.java":   walletJava,
		"com/example/model/Ledger.java":   ledgerWant,
		"com/example/model/Registry.java": registryWant,
		"com/example/model/Holder.java":   holderWant,
		"com/example/app/Main.java":       mainWant,
		"com/example/app/Reporter.java":   reporterWant,
		"com/example/other/Other.java":    otherJava,
	} {
		if got := p.ReadSource(t, rel); got != want {
			t.Errorf("%s:\n got: %q\nwant: %q", rel, got, want)
		}
	}

	if len(rep.Saved) != 6 {
		t.Errorf("saved %d files, want 6: %v", len(rep.Saved), rep.Saved)
	}
	wantMove := MoveResult{
		From: "src/main/java/com/example/model/Account.java",
		To:   "src/main/java/com/example/model/Wallet.java",
	}
	if len(rep.Moves) != 1 || rep.Moves[0] != wantMove {
		t.Errorf("moves = %v, want [%v]", rep.Moves, wantMove)
	}
}

func TestClassRenameSingleFile(t *testing.T) {
	p := testutil.NewProject(t)
	src := "public class Foo { private Foo foo; }\n"
	p.WriteSource(t, "Foo.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "Foo")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("Foo.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Baz",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if p.HasSource("Foo.java") {
		t.Error("Foo.java still exists")
	}
	if got, want := p.ReadSource(t, "Baz.java"), "public class Baz { private Baz baz; }\n"; got != want {
		t.Errorf("Baz.java = %q, want %q", got, want)
	}
	if rep.NewName != "Baz" {
		t.Errorf("NewName = %q, want Baz", rep.NewName)
	}
}

func TestClassRenameKeepsHandChosenNames(t *testing.T) {
	p := testutil.NewProject(t)
	src := "public class Foo { private Foo helper; }\n"
	p.WriteSource(t, "Foo.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "Foo")
	if _, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("Foo.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Baz",
	}); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got, want := p.ReadSource(t, "Baz.java"), "public class Baz { private Baz helper; }\n"; got != want {
		t.Errorf("Baz.java = %q, want %q", got, want)
	}
}

func TestClassRenamePascalCasesRequestedName(t *testing.T) {
	p := testutil.NewProject(t)
	src := "public class Foo { private Foo foo; }\n"
	p.WriteSource(t, "Foo.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "Foo")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("Foo.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "payment_source",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.NewName != "PaymentSource" {
		t.Errorf("NewName = %q, want PaymentSource", rep.NewName)
	}
	if !p.HasSource("PaymentSource.java") {
		t.Error("PaymentSource.java missing")
	}
}

func TestRoundTripRestoresBytes(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/model/Account.java", accountJava)
	p.WriteSource(t, "com/example/model/Ledger.java", ledgerJava)
	p.WriteSource(t, "com/example/app/Main.java", mainJava)
	e := newEngine(p)

	if _, err := renameAccount(t, p, e, false); err != nil {
		t.Fatalf("first rename: %v", err)
	}

	renamed := p.ReadSource(t, "com/example/model/Wallet.java")
	line, col := cursorAt(t, renamed, "Wallet")
	if _, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/model/Wallet.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Account",
	}); err != nil {
		t.Fatalf("rename back: %v", err)
	}

	if p.HasSource("com/example/model/Wallet.java") {
		t.Error("Wallet.java still exists after renaming back")
	}
	for rel, want := range map[string]string{
		"com/example/model/Account.java": accountJava,
		"com/example/model/Ledger.java":  ledgerJava,
		"com/example/app/Main.java":      mainJava,
	} {
		if got := p.ReadSource(t, rel); got != want {
			t.Errorf("%s not byte-identical after round trip:\n got: %q\nwant: %q", rel, got, want)
		}
	}
}

func TestVariableRenameLocal(t *testing.T) {
	p := testutil.NewProject(t)
	src := `package com.example;

public class Calc {
    private int total;

    public int run(int seed) {
        int value = seed;
        value = value + total;
        return value;
    }
}
`
	want := `package com.example;

public class Calc {
    private int total;

    public int run(int seed) {
        int result = seed;
        result = result + total;
        return result;
    }
}
`
	p.WriteSource(t, "com/example/Calc.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "value")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Calc.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "result",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.Kind != "local" {
		t.Errorf("kind = %q, want local", rep.Kind)
	}
	if got := p.ReadSource(t, "com/example/Calc.java"); got != want {
		t.Errorf("Calc.java:\n got: %q\nwant: %q", got, want)
	}
}

func TestVariableRenameField(t *testing.T) {
	p := testutil.NewProject(t)
	src := `package com.example;

public class Counter {
    private int total;

    public void bump(int by) {
        this.total = total + by;
    }
}
`
	want := `package com.example;

public class Counter {
    private int sum;

    public void bump(int by) {
        this.sum = sum + by;
    }
}
`
	p.WriteSource(t, "com/example/Counter.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "total")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Counter.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "sum",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.Kind != "field" {
		t.Errorf("kind = %q, want field", rep.Kind)
	}
	if got := p.ReadSource(t, "com/example/Counter.java"); got != want {
		t.Errorf("Counter.java:\n got: %q\nwant: %q", got, want)
	}
}

func TestVariableRenameParameter(t *testing.T) {
	p := testutil.NewProject(t)
	src := `package com.example;

public class Greeter {
    public String greet(String name) {
        String msg = "hi " + name;
        return msg;
    }
}
`
	want := `package com.example;

public class Greeter {
    public String greet(String who) {
        String msg = "hi " + who;
        return msg;
    }
}
`
	p.WriteSource(t, "com/example/Greeter.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "name")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Greeter.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "who",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.Kind != "parameter" {
		t.Errorf("kind = %q, want parameter", rep.Kind)
	}
	if got := p.ReadSource(t, "com/example/Greeter.java"); got != want {
		t.Errorf("Greeter.java:\n got: %q\nwant: %q", got, want)
	}
}

func TestVariableRenameHonorsShadowing(t *testing.T) {
	p := testutil.NewProject(t)
	src := `package com.example;

public class Shadow {
    private int tally;

    public void work() {
        tally = 1;
        if (tally > 0) {
            String tally = "s";
            tally.trim();
        }
    }
}
`
	want := `package com.example;

public class Shadow {
    private int count;

    public void work() {
        count = 1;
        if (count > 0) {
            String tally = "s";
            tally.trim();
        }
    }
}
`
	p.WriteSource(t, "com/example/Shadow.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "tally")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Shadow.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "count",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.Kind != "field" {
		t.Errorf("Kind = %q, want field", rep.Kind)
	}

	if got := p.ReadSource(t, "com/example/Shadow.java"); got != want {
		t.Errorf("field rename crossed into the shadowing local:\n%s", got)
	}
}

func TestRenameMethodUnsupported(t *testing.T) {
	p := testutil.NewProject(t)
	src := `package com.example;

public class Greeter {
    public void wave() {
    }
}
`
	p.WriteSource(t, "com/example/Greeter.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "wave")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Greeter.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "nod",
	})
	if !jreferrors.HasCode(err, jreferrors.UnsupportedKind) {
		t.Fatalf("Rename on method = %v, want UNSUPPORTED_KIND", err)
	}
	if rep.State != StateError || rep.Outcome != OutcomePlanFailed {
		t.Errorf("state = %s outcome = %s, want error / plan build failed", rep.State, rep.Outcome)
	}
	if got := p.ReadSource(t, "com/example/Greeter.java"); got != src {
		t.Error("failed rename modified the file")
	}
}

func TestRenameNothingAtCursor(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/Empty.java", "package com.example;\n\npublic class Empty {\n}\n")
	e := newEngine(p)

	_, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Empty.java"),
		Line:       99,
		Column:     1,
		Convention: sourcefile.RowColOneBased,
		NewName:    "X",
	})
	if !jreferrors.HasCode(err, jreferrors.NotFound) {
		t.Errorf("Rename beyond file = %v, want NOT_FOUND", err)
	}
}

func TestRenameRejectsBadNames(t *testing.T) {
	p := testutil.NewProject(t)
	src := "public class Foo { private Foo foo; }\n"
	p.WriteSource(t, "Foo.java", src)
	e := newEngine(p)

	line, col := cursorAt(t, src, "Foo")
	for _, newName := range []string{"", "Foo"} {
		if _, err := e.Rename(context.Background(), Request{
			File:       p.SourcePath("Foo.java"),
			Line:       line,
			Column:     col,
			Convention: sourcefile.RowColOneBased,
			NewName:    newName,
		}); !jreferrors.HasCode(err, jreferrors.InvalidArgument) {
			t.Errorf("Rename to %q = %v, want INVALID_ARGUMENT", newName, err)
		}
	}

	vline, vcol := cursorAt(t, src, "foo")
	if _, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("Foo.java"),
		Line:       vline,
		Column:     vcol,
		Convention: sourcefile.RowColOneBased,
		NewName:    "9bad",
	}); !jreferrors.HasCode(err, jreferrors.InvalidArgument) {
		t.Errorf("variable rename to 9bad = %v, want INVALID_ARGUMENT", err)
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	p := modelProject(t)
	e := newEngine(p)

	rep, err := renameAccount(t, p, e, true)
	if err != nil {
		t.Fatalf("Rename dry run: %v", err)
	}
	if rep.Outcome != OutcomeDryRun {
		t.Errorf("outcome = %s, want dry run", rep.Outcome)
	}
	if !p.HasSource("com/example/model/Account.java") {
		t.Error("dry run moved the declaration file")
	}
	if got := p.ReadSource(t, "com/example/model/Ledger.java"); got != ledgerJava {
		t.Error("dry run modified Ledger.java")
	}
	if len(rep.Previews) == 0 {
		t.Error("dry run produced no previews")
	}
	for _, fd := range rep.Previews {
		if fd.Unified == "" {
			t.Errorf("empty preview for %s", fd.Path)
		}
	}
	if len(rep.Moves) != 1 || rep.Moves[0].To != "src/main/java/com/example/model/Wallet.java" {
		t.Errorf("dry run moves = %v", rep.Moves)
	}
	if rep.Plan == nil || rep.Plan.Len() != rep.EditCount {
		t.Error("report plan missing or inconsistent")
	}
}

func TestPartialApplyKeepsSavedFiles(t *testing.T) {
	p := testutil.NewProject(t)
	zextSrc := `package com.example;

public class Zext {
    private Zext zext;
}
`
	alphaSrc := `package com.example;

public class Alpha {
    private Zext zext;
}
`
	p.WriteSource(t, "com/example/Zext.java", zextSrc)
	p.WriteSource(t, "com/example/Alpha.java", alphaSrc)

	// A directory squatting on the target path makes the final save fail.
	if err := os.MkdirAll(p.SourcePath("com/example/Blocked.java"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	e := newEngine(p)
	line, col := cursorAt(t, zextSrc, "Zext")
	rep, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("com/example/Zext.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Blocked",
	})
	if !jreferrors.HasCode(err, jreferrors.PartialApply) {
		t.Fatalf("Rename = %v, want PARTIAL_APPLY", err)
	}
	if rep.Outcome != OutcomePartial {
		t.Errorf("outcome = %s, want partially applied", rep.Outcome)
	}
	if len(rep.Saved) != 1 || rep.Saved[0] != "src/main/java/com/example/Alpha.java" {
		t.Errorf("saved = %v, want just Alpha.java", rep.Saved)
	}
	if rep.FailedFile != "src/main/java/com/example/Zext.java" {
		t.Errorf("failedFile = %q", rep.FailedFile)
	}
	if !strings.Contains(rep.Message, "partially applied with 1 files saved") {
		t.Errorf("message = %q", rep.Message)
	}

	// The saved file keeps its new content, the failed one its old.
	if got := p.ReadSource(t, "com/example/Alpha.java"); !strings.Contains(got, "private Blocked blocked;") {
		t.Errorf("Alpha.java was not saved with new content:\n%s", got)
	}
	if got := p.ReadSource(t, "com/example/Zext.java"); got != zextSrc {
		t.Errorf("failed file content changed:\n%s", got)
	}
}

func TestRenameTakesBackupFirst(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/model/Account.java", accountJava)
	p.WriteSource(t, "com/example/model/Ledger.java", ledgerJava)

	cfg := config.DefaultConfig()
	store := backup.NewStore(p.Root, cfg, nil)
	e := New(p.Root, cfg, nil, nil, nil, store)

	rep, err := renameAccount(t, p, e, false)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if rep.BackupID == "" {
		t.Fatal("no backup recorded on report")
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("store has %d snapshots, want 1", len(list))
	}
	if got, want := list[0].Operation, "rename class Account -> Wallet"; got != want {
		t.Errorf("operation = %q, want %q", got, want)
	}
	if len(list[0].Files) != 2 {
		t.Errorf("snapshot captured %d files, want 2", len(list[0].Files))
	}

	if _, err := store.Restore(rep.BackupID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := p.ReadSource(t, "com/example/model/Account.java"); got != accountJava {
		t.Errorf("restore did not bring back Account.java:\n%s", got)
	}
}

func TestRenameCancelledContext(t *testing.T) {
	p := modelProject(t)
	e := newEngine(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	line, col := cursorAt(t, accountJava, "Account")
	rep, err := e.Rename(ctx, Request{
		File:       p.SourcePath("com/example/model/Account.java"),
		Line:       line,
		Column:     col,
		Convention: sourcefile.RowColOneBased,
		NewName:    "Wallet",
	})
	if err == nil {
		t.Fatal("Rename with cancelled context succeeded")
	}
	if rep.Outcome != OutcomePlanFailed {
		t.Errorf("outcome = %s, want plan build failed", rep.Outcome)
	}
	if got := p.ReadSource(t, "com/example/model/Account.java"); got != accountJava {
		t.Error("cancelled rename modified files")
	}
}

func TestEditorConventionCursor(t *testing.T) {
	p := testutil.NewProject(t)
	src := "public class Foo { private Foo foo; }\n"
	p.WriteSource(t, "Foo.java", src)
	e := newEngine(p)

	// Neovim sends 1-based lines with 0-based columns.
	col := strings.Index(src, "Foo") - 1
	if _, err := e.Rename(context.Background(), Request{
		File:       p.SourcePath("Foo.java"),
		Line:       1,
		Column:     col,
		Convention: sourcefile.RowOneColZero,
		NewName:    "Baz",
	}); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if !p.HasSource("Baz.java") {
		t.Error("editor-convention cursor missed the declaration")
	}
}

func TestInspect(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/model/Account.java", accountJava)
	p.WriteSource(t, "com/example/model/Ledger.java", ledgerJava)
	e := newEngine(p)

	line, col := cursorAt(t, ledgerJava, "account")
	info, err := e.Inspect(context.Background(), p.SourcePath("com/example/model/Ledger.java"),
		line, col, sourcefile.RowColOneBased)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Name != "account" || info.Kind != "field" {
		t.Errorf("name/kind = %q/%q, want account/field", info.Name, info.Kind)
	}
	if info.Type != "Account" {
		t.Errorf("type = %q, want Account", info.Type)
	}
	if info.Class != "Ledger" || info.Package != "com.example.model" {
		t.Errorf("class/package = %q/%q", info.Class, info.Package)
	}
	if !info.Renameable {
		t.Error("field reported as not renameable")
	}

	cline, ccol := cursorAt(t, ledgerJava, "Ledger")
	cinfo, err := e.Inspect(context.Background(), p.SourcePath("com/example/model/Ledger.java"),
		cline, ccol, sourcefile.RowColOneBased)
	if err != nil {
		t.Fatalf("Inspect class: %v", err)
	}
	if cinfo.Kind != "class" || !cinfo.Renameable {
		t.Errorf("class inspect = %+v", cinfo)
	}

	mline, mcol := cursorAt(t, accountJava, "touch")
	minfo, err := e.Inspect(context.Background(), p.SourcePath("com/example/model/Account.java"),
		mline, mcol, sourcefile.RowColOneBased)
	if err != nil {
		t.Fatalf("Inspect method: %v", err)
	}
	if minfo.Kind != "method" || minfo.Renameable {
		t.Errorf("method inspect = %+v", minfo)
	}

	if _, err := e.Inspect(context.Background(), p.SourcePath("com/example/model/Account.java"),
		99, 1, sourcefile.RowColOneBased); !jreferrors.HasCode(err, jreferrors.NotFound) {
		t.Errorf("Inspect beyond file = %v, want NOT_FOUND", err)
	}
}

func TestProjectListerHonorsIgnores(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteSource(t, "com/example/A.java", "public class A {}\n")
	p.Write(t, "build/Gen.java", "public class Gen {}\n")

	files, err := ProjectLister{}.JavaFiles(p.Root)
	if err != nil {
		t.Fatalf("JavaFiles: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "A.java" {
		t.Errorf("JavaFiles = %v, want just A.java", files)
	}
}

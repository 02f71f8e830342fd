package java

import "testing"

const resolveFixture = `package com.example;

public class Ledger {
    private Legacy account;
    private Wallet shared;
    private Wallet mirror = shared;

    public Ledger(Wallet shared) {
        this.shared = shared;
    }

    public void process(Account account) {
        account.touch();
    }

    public void useField() {
        account.clear();
        shared.check();
    }

    public void shadow(Foo x) {
        if (x != null) {
            Bar x = make();
            x.use();
        }
        x.out();
    }

    public void early() {
        log(y);
        Account y = fetch();
        y.store();
    }
}
`

func TestResolveTypeParameterOverField(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	// Inside process, account is the parameter, not the Legacy field.
	ref := receiverAt(t, f, "account", 0)
	if got := ResolveType(f, ref); got != "Account" {
		t.Errorf("ResolveType(account in process) = %q, want Account", got)
	}
}

func TestResolveTypeField(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	ref := receiverAt(t, f, "account", 1)
	if got := ResolveType(f, ref); got != "Legacy" {
		t.Errorf("ResolveType(account in useField) = %q, want Legacy", got)
	}

	shared := receiverAt(t, f, "shared", 0)
	if got := ResolveType(f, shared); got != "Wallet" {
		t.Errorf("ResolveType(shared in useField) = %q, want Wallet", got)
	}
}

// A local declared in a nested block wins over a same-named parameter for
// references after the declaration; references outside that block still
// see the parameter.
func TestResolveTypeShadowing(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	inner := receiverAt(t, f, "x", 0)
	if got := ResolveType(f, inner); got != "Bar" {
		t.Errorf("ResolveType(x inside block) = %q, want Bar", got)
	}

	outer := receiverAt(t, f, "x", 1)
	if got := ResolveType(f, outer); got != "Foo" {
		t.Errorf("ResolveType(x outside block) = %q, want Foo", got)
	}
}

// A reference before the local's declaration does not see the local.
func TestResolveTypeBeforeDeclaration(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	early := identifierAt(t, f, "y", 0) // the argument of log(y)
	if got := ResolveType(f, early); got != "" {
		t.Errorf("ResolveType(y before declaration) = %q, want empty", got)
	}

	after := receiverAt(t, f, "y", 0)
	if got := ResolveType(f, after); got != "Account" {
		t.Errorf("ResolveType(y after declaration) = %q, want Account", got)
	}
}

func TestResolveTypeThis(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	res := f.Query(`(this) @t`).Within(f.Root()).Returning("t").Exec()
	if res.Len() != 1 {
		t.Fatalf("this occurrences = %d, want 1", res.Len())
	}
	if got := ResolveType(f, res.First()); got != "Ledger" {
		t.Errorf("ResolveType(this) = %q, want Ledger", got)
	}
}

func TestResolveTypeFieldInitializer(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	// The shared reference in "private Wallet mirror = shared;" resolves
	// through the field initializer scope straight to the field.
	ref := identifierAt(t, f, "shared", 1)
	if got := ResolveType(f, ref); got != "Wallet" {
		t.Errorf("ResolveType(shared in initializer) = %q, want Wallet", got)
	}
}

const primitiveFixture = `package com.example;

public class Calc {
    private List<Account> items;

    public int run(int seed) {
        int value = seed;
        value = value + 1;
        return value;
    }
}
`

// Primitive declarations resolve to their keyword spelling, so a
// primitive-typed reference is still distinguishable from one that
// resolves to nothing.
func TestResolveTypePrimitive(t *testing.T) {
	f := parseSrc(t, primitiveFixture)

	ref := identifierAt(t, f, "value", 2) // RHS of value = value + 1
	if got := ResolveType(f, ref); got != "int" {
		t.Errorf("ResolveType(value) = %q, want int", got)
	}

	seed := identifierAt(t, f, "seed", 1) // the initializer usage
	if got := ResolveType(f, seed); got != "int" {
		t.Errorf("ResolveType(seed) = %q, want int", got)
	}
}

func TestTypeSpelling(t *testing.T) {
	f := parseSrc(t, primitiveFixture)

	full := f.Query(`(field_declaration type: (_) @t)`).Within(f.Root()).Returning("t").Exec()
	if full.Len() != 1 {
		t.Fatalf("field type nodes = %d, want 1", full.Len())
	}
	if got := TypeSpelling(f, full.First()); got != "List" {
		t.Errorf("TypeSpelling(List<Account>) = %q, want List", got)
	}

	plain := typeIdentifier(t, f, "Account")
	if got := TypeSpelling(f, plain); got != "Account" {
		t.Errorf("TypeSpelling(Account) = %q, want Account", got)
	}

	prim := f.Query(`(integral_type) @t`).Within(f.Root()).Returning("t").Exec()
	if prim.IsEmpty() {
		t.Fatal("no integral type in fixture")
	}
	if got := TypeSpelling(f, prim.First()); got != "int" {
		t.Errorf("TypeSpelling(int) = %q, want int", got)
	}

	if got := TypeSpelling(f, nil); got != "" {
		t.Errorf("TypeSpelling(nil) = %q, want empty", got)
	}
}

func TestResolveTypeUnknown(t *testing.T) {
	f := parseSrc(t, resolveFixture)

	if got := ResolveType(f, nil); got != "" {
		t.Errorf("ResolveType(nil) = %q, want empty", got)
	}

	// make() in shadow has no receiver; the bare method name identifier
	// resolves to nothing.
	ref := identifierAt(t, f, "make", 0)
	if got := ResolveType(f, ref); got != "" {
		t.Errorf("ResolveType(make) = %q, want empty", got)
	}
}

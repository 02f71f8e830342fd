package java

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const typesFixture = `package com.example;

public class Account {
    private long balance;

    public void deposit(long amount) {
        balance = balance + amount;
    }

    public static void main(String[] args) {
        new Account().deposit(1);
    }
}

class Helper {
    void assist() {
    }
}
`

func TestFindTypeByName(t *testing.T) {
	f := parseSrc(t, typesFixture)

	decl := FindTypeByName(f, "Account")
	if decl == nil {
		t.Fatal("FindTypeByName(Account) = nil")
	}
	if got := decl.Node.Type(); got != "class_declaration" {
		t.Errorf("decl node type = %q, want class_declaration", got)
	}
	if got := f.TextOf(decl.NameNode); got != "Account" {
		t.Errorf("name = %q, want Account", got)
	}

	if FindTypeByName(f, "Helper") == nil {
		t.Error("FindTypeByName(Helper) = nil")
	}
	if FindTypeByName(f, "Nothing") != nil {
		t.Error("FindTypeByName(Nothing) != nil")
	}
}

func TestFindTypeByNameAcrossShapes(t *testing.T) {
	f := parseSrc(t, classifyFixture)

	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		if FindTypeByName(f, name) == nil {
			t.Errorf("FindTypeByName(%q) = nil", name)
		}
	}
}

func TestPublicType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Account.java")
	if err := os.WriteFile(path, []byte(typesFixture), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	decl := PublicType(f)
	if decl == nil {
		t.Fatal("PublicType() = nil")
	}
	if got := f.TextOf(decl.NameNode); got != "Account" {
		t.Errorf("public type = %q, want Account", got)
	}
}

func TestPublicTypeInMemory(t *testing.T) {
	f := parseSrc(t, typesFixture)
	if PublicType(f) != nil {
		t.Error("PublicType() != nil for an unbound unit")
	}
}

func TestMethods(t *testing.T) {
	f := parseSrc(t, typesFixture)

	account := FindTypeByName(f, "Account")
	if account == nil {
		t.Fatal("FindTypeByName(Account) = nil")
	}
	methods := Methods(f, account.Node)
	if len(methods) != 2 {
		t.Fatalf("Methods(Account) = %d, want 2", len(methods))
	}

	if got := Methods(f, nil); got != nil {
		t.Errorf("Methods(nil) = %v, want nil", got)
	}
	if got := Methods(f, account.NameNode); got != nil {
		t.Errorf("Methods(non-class node) = %v, want nil", got)
	}
}

func TestIsMainMethod(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{
			name: "array form",
			src:  `class A { public static void main(String[] args) { } }`,
			want: true,
		},
		{
			name: "varargs form",
			src:  `class A { public static void main(String... args) { } }`,
			want: true,
		},
		{
			name: "spread whitespace",
			src:  "class A { public static void main ( String [ ] argv ) { } }",
			want: true,
		},
		{
			name: "not static",
			src:  `class A { public void main(String[] args) { } }`,
			want: false,
		},
		{
			name: "wrong name",
			src:  `class A { public static void run(String[] args) { } }`,
			want: false,
		},
		{
			name: "wrong parameter",
			src:  `class A { public static void main(int[] args) { } }`,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseSrc(t, tt.src)
			decl := FindTypeByName(f, "A")
			if decl == nil {
				t.Fatal("class A not found")
			}
			methods := Methods(f, decl.Node)
			if len(methods) != 1 {
				t.Fatalf("Methods() = %d, want 1", len(methods))
			}
			if got := IsMainMethod(f, methods[0]); got != tt.want {
				t.Errorf("IsMainMethod() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnclosingTypeName(t *testing.T) {
	f := parseSrc(t, typesFixture)

	amount := identifierAt(t, f, "amount", 0)
	if got := EnclosingTypeName(f, amount); got != "Account" {
		t.Errorf("EnclosingTypeName(amount) = %q, want Account", got)
	}

	assist := identifierAt(t, f, "assist", 0)
	if got := EnclosingTypeName(f, assist); got != "Helper" {
		t.Errorf("EnclosingTypeName(assist) = %q, want Helper", got)
	}

	if got := EnclosingTypeName(f, f.Root()); got != "" {
		t.Errorf("EnclosingTypeName(root) = %q, want empty", got)
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collectionstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/suparena/collectionstore/datastore/mock"
	"github.com/suparena/collectionstore/errors"
	"github.com/suparena/collectionstore/hooks"
	"github.com/suparena/collectionstore/schema"
)

// fixture wires a user/organization/pet trio onto mock adapters.
type fixture struct {
	registry *Registry
	users    *Collection
	orgs     *Collection
	pets     *Collection
	userDB   *mock.Adapter
	orgDB    *mock.Adapter
	petDB    *mock.Adapter
}

func newFixture(t *testing.T, userHooks *hooks.Set) *fixture {
	t.Helper()

	f := &fixture{
		registry: NewRegistry(),
		userDB:   mock.New(),
		orgDB:    mock.New(),
		petDB:    mock.New(),
	}

	var err error
	f.orgs, err = New(Config{
		Identity: "organization",
		Attributes: schema.Declarations{
			"name":  "string",
			"email": "string",
		},
		Adapter: f.orgDB,
	})
	if err != nil {
		t.Fatalf("bootstrap organization: %v", err)
	}

	f.pets, err = New(Config{
		Identity: "pet",
		Attributes: schema.Declarations{
			"name":  "string",
			"owner": map[string]any{"belongsTo": "user"},
		},
		Adapter: f.petDB,
	})
	if err != nil {
		t.Fatalf("bootstrap pet: %v", err)
	}

	f.users, err = New(Config{
		Identity: "user",
		Attributes: schema.Declarations{
			"fullName": map[string]any{"type": "string", "columnName": "full_name"},
			"age":      "number",
			"owner":    map[string]any{"belongsTo": "organization"},
			"pets":     map[string]any{"hasMany": "pet", "via": "owner"},
		},
		Adapter: f.userDB,
		Hooks:   userHooks,
	})
	if err != nil {
		t.Fatalf("bootstrap user: %v", err)
	}

	for _, c := range []*Collection{f.orgs, f.pets, f.users} {
		if err := f.registry.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.Identity(), err)
		}
	}
	return f
}

func TestCreateHandleIsLazy(t *testing.T) {
	f := newFixture(t, nil)

	op := f.users.Create(map[string]any{"fullName": "Ada"})
	if f.userDB.CreateCalls() != 0 {
		t.Fatal("an unexecuted handle must not touch the adapter")
	}

	record, err := op.Exec(context.Background())
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if f.userDB.CreateCalls() != 1 {
		t.Errorf("expected exactly one adapter create, got %d", f.userDB.CreateCalls())
	}

	// A second Exec returns the same outcome without re-running.
	again, err := op.Exec(context.Background())
	if err != nil || again != record {
		t.Error("Exec should be idempotent on the same handle")
	}
}

func TestCreateStoresColumnKeyedRow(t *testing.T) {
	f := newFixture(t, nil)

	record, err := f.users.Create(map[string]any{"fullName": "Ada", "age": "36"}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if record.Get("fullName") != "Ada" {
		t.Errorf("hydrated record should be attribute-keyed, got %v", record.Values())
	}
	if record.Get("age") != float64(36) {
		t.Errorf("numeric text should be cast, got %v (%T)", record.Get("age"), record.Get("age"))
	}
	if record.PrimaryKey() == nil || record.PrimaryKey() == "" {
		t.Error("storage should have assigned a primary key")
	}

	rows := f.userDB.Records()
	if len(rows) != 1 {
		t.Fatalf("expected one stored row, got %d", len(rows))
	}
	for _, row := range rows {
		if _, ok := row["full_name"]; !ok {
			t.Errorf("stored row should be column-keyed, got %v", row)
		}
		if _, ok := row["fullName"]; ok {
			t.Errorf("attribute key leaked into storage: %v", row)
		}
	}
}

func TestCreateUndeclaredAttributesAreStripped(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.users.Create(map[string]any{"fullName": "Ada", "junk": "x"}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, row := range f.userDB.Records() {
		if _, ok := row["junk"]; ok {
			t.Errorf("undeclared attribute should not reach the adapter: %v", row)
		}
	}
}

func TestCreateResolvesBelongsToBeforeParentWrite(t *testing.T) {
	f := newFixture(t, nil)

	record, err := f.users.Create(map[string]any{
		"fullName": "Ada",
		"owner":    map[string]any{"email": "e@x.com"},
	}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if f.orgDB.CreateCalls() != 1 {
		t.Fatalf("expected the target collection to be created, got %d calls", f.orgDB.CreateCalls())
	}

	orgRows := f.orgDB.Records()
	if len(orgRows) != 1 {
		t.Fatalf("expected one organization row, got %d", len(orgRows))
	}
	var orgKey string
	for k := range orgRows {
		orgKey = k
	}

	if record.Get("owner") != orgKey {
		t.Errorf("parent's owner should be the target's new primary key %q, got %v", orgKey, record.Get("owner"))
	}
	for _, row := range f.userDB.Records() {
		if row["owner"] != orgKey {
			t.Errorf("persisted parent should carry the foreign key, got %v", row["owner"])
		}
	}
}

func TestCreateUpsertsBelongsToWithSuppliedKey(t *testing.T) {
	f := newFixture(t, nil)

	record, err := f.users.Create(map[string]any{
		"fullName": "Ada",
		"owner":    map[string]any{"id": "org-9", "email": "e@x.com"},
	}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if f.orgDB.UpsertCalls() != 1 || f.orgDB.CreateCalls() != 0 {
		t.Errorf("expected one upsert and no create, got upserts=%d creates=%d",
			f.orgDB.UpsertCalls(), f.orgDB.CreateCalls())
	}
	if record.Get("owner") != "org-9" {
		t.Errorf("expected the supplied key, got %v", record.Get("owner"))
	}
}

func TestCreateBelongsToFailureWritesNothing(t *testing.T) {
	f := newFixture(t, nil)
	f.orgDB.WithCreateError(fmt.Errorf("org storage down"))

	_, err := f.users.Create(map[string]any{
		"fullName": "Ada",
		"owner":    map[string]any{"email": "e@x.com"},
	}).Exec(context.Background())
	if err == nil {
		t.Fatal("expected an association resolution error")
	}
	if !errors.IsAssociationResolution(err) {
		t.Errorf("expected AssociationResolutionError, got %v", err)
	}
	if f.userDB.CreateCalls() != 0 {
		t.Errorf("no parent write may be attempted, got %d calls", f.userDB.CreateCalls())
	}
}

func TestBeforeCreateHookRejectionBlocksWrite(t *testing.T) {
	f := newFixture(t, &hooks.Set{
		BeforeCreate: func(ctx context.Context, values map[string]any) error {
			return fmt.Errorf("rejected by policy")
		},
	})

	_, err := f.users.Create(map[string]any{"fullName": "Ada"}).Exec(context.Background())
	if err == nil {
		t.Fatal("expected a hook error")
	}
	if !errors.IsHook(err) {
		t.Errorf("expected HookError, got %v", err)
	}
	if f.userDB.CreateCalls() != 0 {
		t.Errorf("adapter create-call count must be zero, got %d", f.userDB.CreateCalls())
	}
}

func TestValidationRunsBeforeBeforeCreateHook(t *testing.T) {
	order := []string{}
	f := newFixture(t, &hooks.Set{
		Validate: func(ctx context.Context, values map[string]any) error {
			order = append(order, "validate")
			return nil
		},
		BeforeCreate: func(ctx context.Context, values map[string]any) error {
			order = append(order, "beforeCreate")
			return nil
		},
	})

	if _, err := f.users.Create(map[string]any{"fullName": "Ada"}).Exec(context.Background()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(order) != 2 || order[0] != "validate" || order[1] != "beforeCreate" {
		t.Errorf("expected validate then beforeCreate, got %v", order)
	}
}

func TestCreateLinksHasManyChildren(t *testing.T) {
	f := newFixture(t, nil)

	record, err := f.users.Create(map[string]any{
		"fullName": "Ada",
		"pets": []any{
			map[string]any{"name": "Rex"},
			map[string]any{"name": "Mia"},
		},
	}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if f.userDB.Count() != 1 {
		t.Errorf("expected one parent row, got %d", f.userDB.Count())
	}
	if f.petDB.Count() != 2 {
		t.Errorf("expected two child rows, got %d", f.petDB.Count())
	}

	for _, row := range f.petDB.Records() {
		if row["owner"] != record.PrimaryKey() {
			t.Errorf("child should carry the parent key %v, got %v", record.PrimaryKey(), row["owner"])
		}
	}

	children := record.Associated("pets")
	if len(children) != 2 {
		t.Fatalf("association accessor should expose both children, got %d", len(children))
	}
	names := map[any]bool{children[0].Get("name"): true, children[1].Get("name"): true}
	if !names["Rex"] || !names["Mia"] {
		t.Errorf("unexpected children: %v, %v", children[0].Values(), children[1].Values())
	}
}

func TestNestedLinkFailureLeavesParentPersisted(t *testing.T) {
	f := newFixture(t, nil)
	f.petDB.WithCreateError(fmt.Errorf("pet storage down"))

	_, err := f.users.Create(map[string]any{
		"fullName": "Ada",
		"pets":     []any{map[string]any{"name": "Rex"}},
	}).Exec(context.Background())
	if err == nil {
		t.Fatal("expected a nested link error")
	}
	if !errors.IsNestedLink(err) {
		t.Errorf("expected NestedLinkError, got %v", err)
	}

	// Non-transactional boundary: the parent row stays.
	if f.userDB.Count() != 1 {
		t.Errorf("parent row should remain persisted, got %d rows", f.userDB.Count())
	}
}

func TestAfterCreateHookFailureLeavesRowRetrievable(t *testing.T) {
	f := newFixture(t, &hooks.Set{
		AfterCreate: func(ctx context.Context, values map[string]any) error {
			return fmt.Errorf("notification failed")
		},
	})

	_, err := f.users.Create(map[string]any{"fullName": "Ada"}).Exec(context.Background())
	if err == nil {
		t.Fatal("expected a hook error")
	}
	if !errors.IsHook(err) {
		t.Errorf("expected HookError, got %v", err)
	}

	rows := f.userDB.Records()
	if len(rows) != 1 {
		t.Fatalf("parent row should remain persisted, got %d rows", len(rows))
	}
	for key := range rows {
		record, err := f.users.FindByKey(context.Background(), key)
		if err != nil {
			t.Fatalf("FindByKey failed: %v", err)
		}
		if record == nil || record.Get("fullName") != "Ada" {
			t.Errorf("row should be retrievable after the failed after hook, got %v", record)
		}
	}
}

func TestAdapterErrorIsAnnotatedWithCollection(t *testing.T) {
	f := newFixture(t, nil)
	cause := fmt.Errorf("connection reset")
	f.userDB.WithCreateError(cause)

	_, err := f.users.Create(map[string]any{"fullName": "Ada"}).Exec(context.Background())
	if err == nil {
		t.Fatal("expected an adapter error")
	}
	if !errors.IsAdapter(err) {
		t.Errorf("expected AdapterError, got %v", err)
	}

	var ae *errors.AdapterError
	if !stderrors.As(err, &ae) {
		t.Fatalf("expected *AdapterError, got %T", err)
	}
	if ae.Collection != "user" {
		t.Errorf("adapter error should carry the owning collection, got %q", ae.Collection)
	}
	if ae.Err != cause {
		t.Error("the underlying adapter error must surface as-is")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	adapter := mock.New()
	users, err := New(Config{
		Identity: "user",
		Attributes: schema.Declarations{
			"name":  "string",
			"plan":  map[string]any{"type": "string", "defaultsTo": "free"},
			"token": map[string]any{"type": "string", "defaultsTo": schema.UUID()},
			"slug": map[string]any{"type": "string", "defaultsTo": schema.Factory(func(values map[string]any) any {
				return fmt.Sprintf("u-%v", values["name"])
			})},
		},
		Adapter: adapter,
	})
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	record, err := users.Create(map[string]any{"name": "ada"}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if record.Get("plan") != "free" {
		t.Errorf("literal default not applied: %v", record.Get("plan"))
	}
	if record.Get("token") == nil || record.Get("token") == "" {
		t.Error("factory default not applied")
	}
	if record.Get("slug") != "u-ada" {
		t.Errorf("factory should see the candidate input, got %v", record.Get("slug"))
	}

	// Supplied values win over defaults.
	record2, err := users.Create(map[string]any{"name": "bob", "plan": "pro"}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record2.Get("plan") != "pro" {
		t.Errorf("supplied value should win over default, got %v", record2.Get("plan"))
	}
}

func TestCreateStampsTimestamps(t *testing.T) {
	adapter := mock.New()
	notes, err := New(Config{
		Identity:   "note",
		Attributes: schema.Declarations{"body": "string"},
		Timestamps: true,
		Adapter:    adapter,
	})
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	record, err := notes.Create(map[string]any{"body": "hi"}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created, ok := record.Get(CreatedAtAttribute).(time.Time)
	if !ok {
		t.Fatalf("expected createdAt time.Time, got %T", record.Get(CreatedAtAttribute))
	}
	updated, ok := record.Get(UpdatedAtAttribute).(time.Time)
	if !ok {
		t.Fatalf("expected updatedAt time.Time, got %T", record.Get(UpdatedAtAttribute))
	}
	if !created.Equal(updated) {
		t.Error("both timestamps should share one now value")
	}

	// A supplied timestamp is respected.
	supplied := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	record2, err := notes.Create(map[string]any{"body": "hi", CreatedAtAttribute: supplied}).Exec(context.Background())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !record2.Get(CreatedAtAttribute).(time.Time).Equal(supplied) {
		t.Errorf("supplied createdAt should win, got %v", record2.Get(CreatedAtAttribute))
	}
}

func TestCreateEachDropsNilEntries(t *testing.T) {
	f := newFixture(t, nil)

	records, err := f.users.CreateEach(context.Background(), []map[string]any{
		{"fullName": "Ada"},
		nil,
		{"fullName": "Grace"},
	})
	if err != nil {
		t.Fatalf("CreateEach failed: %v", err)
	}

	if len(records) != 2 {
		t.Errorf("nil entries should be dropped, got %d records", len(records))
	}
	if f.userDB.Count() != 2 {
		t.Errorf("expected 2 rows, got %d", f.userDB.Count())
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/models"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	items, err := a.api.List(ctx)
	if err != nil {
		return a.checkSession(ctx, err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No records")
		return nil
	}
	for _, item := range items {
		fmt.Fprintln(a.out, item)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	form, err := a.readForm(models.Medicine{})
	if err != nil {
		return err
	}

	item, err := a.api.Create(ctx, form)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, "Added:", item)
	return nil
}

// Update replaces every field of a record. The current values are offered as
// defaults; files are only sent when a path is entered.
func (a *App) Update(ctx context.Context, idArg string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.readID(idArg, "Enter record id to update")
	if err != nil {
		return err
	}

	items, err := a.api.List(ctx)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	var current *models.Medicine
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("record %d not found", id)
	}

	form, err := a.readForm(*current)
	if err != nil {
		return err
	}

	item, err := a.api.Update(ctx, id, form)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, "Updated:", item)
	return nil
}

func (a *App) Delete(ctx context.Context, idArg string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.readID(idArg, "Enter record id to delete")
	if err != nil {
		return err
	}

	if err := a.api.Delete(ctx, id); err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintf(a.out, "Deleted record %d\n", id)
	return nil
}

func (a *App) readID(arg, prompt string) (int64, error) {
	if arg == "" {
		var err error
		if arg, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// readForm prompts for every field. An empty answer keeps the value from
// cur, which is the zero record when adding.
func (a *App) readForm(cur models.Medicine) (models.MedicineForm, error) {
	age := ""
	if cur.ID != 0 {
		age = strconv.Itoa(cur.Age)
	}

	var f models.MedicineForm
	prompts := []struct {
		dst   *string
		label string
		def   string
	}{
		{&f.UserName, "Patient name", cur.UserName},
		{&f.Age, "Age", age},
		{&f.Contact, "Contact", cur.Contact},
		{&f.DrugName, "Drug name", cur.DrugName},
		{&f.MedicineType, "Medicine type", cur.MedicineType},
		{&f.ProfileImagePath, "Profile image file (empty to skip)", ""},
		{&f.DocumentProofPath, "Document proof file (empty to skip)", ""},
	}

	for _, p := range prompts {
		v, err := getTextWithDefault(a.reader, p.label, p.def, a.out)
		if err != nil {
			return f, err
		}
		*p.dst = v
	}
	return f, nil
}

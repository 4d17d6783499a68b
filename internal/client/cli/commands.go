package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.notes.Register(ctx, userName, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.notes.Login(ctx, userName, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.userName = userName
	printlnFn("Success!")
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, fromCache, err := a.notes.List(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if fromCache {
		printlnFn("(server unreachable, showing cached notes)")
	}
	if len(notes) == 0 {
		printlnFn("No notes.")
		return nil
	}
	for _, n := range notes {
		printlnFn(fmt.Sprintf("%s  [%s]  %s", n.ID, n.Status, n.Title))
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	note, err := a.notes.Create(ctx, title, content)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Created note", note.ID)
	return nil
}

// Update prompts for new field values; an empty answer keeps the stored one.
func (a *App) Update(ctx context.Context, id string) error {
	title, err := GetSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	content, err := GetSimpleText(a.reader, "New content (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	status, err := GetSimpleText(a.reader, "New status (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	note, err := a.notes.Update(ctx, id, opt(title), opt(content), opt(status))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Updated note", note.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.notes.Delete(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Deleted note", id)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.notes.Ping(ctx); err != nil {
		printlnFn("Server unreachable:", err.Error())
		return err
	}
	printlnFn("Server is up.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.notes.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}

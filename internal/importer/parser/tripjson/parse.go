// Package tripjson parses JSON dumps of the legacy trip splitting app.
package tripjson

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tripsplit/backend/internal/importer"
	"github.com/tripsplit/backend/internal/models"
)

// dateFormats lists the formats found in legacy dumps, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02",
}

// Parse reads a legacy trip JSON dump.
func Parse(f io.Reader) (importer.ParsedResources, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("could not read data from file: %w", err)
	}

	var dump Dump
	err = json.Unmarshal(content, &dump)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("not a valid trip JSON dump: %w", err)
	}

	var resources importer.ParsedResources

	parsePersons(&resources, dump.Persons)
	parseGroups(&resources, dump.Groups)

	err = parseExpenses(&resources, dump.Expenses)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("error parsing expenses: %w", err)
	}

	err = parsePayments(&resources, dump.Payments)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("error parsing payments: %w", err)
	}

	return resources, nil
}

func parsePersons(resources *importer.ParsedResources, persons []Person) {
	for _, person := range persons {
		resources.Persons = append(resources.Persons, models.Person{
			Name:     person.Name,
			Car:      person.Car,
			Drinks:   person.Drinks,
			Finished: person.Finished,
		})
	}
}

func parseGroups(resources *importer.ParsedResources, groups []Group) {
	for _, group := range groups {
		resources.Groups = append(resources.Groups, importer.Group{
			Model:   models.Group{Name: group.Name},
			Members: group.Members,
		})
	}
}

func parseExpenses(resources *importer.ParsedResources, expenses []Expense) error {
	for i, expense := range expenses {
		date, err := parseDate(expense.Date)
		if err != nil {
			return fmt.Errorf("expense %d: %w", i, err)
		}

		resources.Expenses = append(resources.Expenses, models.Expense{
			Description: expense.Description,
			Amount:      expense.Amount,
			Category:    expense.Category,
			PaidBy:      expense.PaidBy,
			Date:        date,
			Attachments: normalizeAttachments(expense.Attachments, expense.AttachmentName, expense.AttachmentDataURL),
		})
	}

	return nil
}

func parsePayments(resources *importer.ParsedResources, payments []Payment) error {
	for i, payment := range payments {
		date, err := parseDate(payment.Date)
		if err != nil {
			return fmt.Errorf("payment %d: %w", i, err)
		}

		resources.Payments = append(resources.Payments, models.Payment{
			Note:        payment.Note,
			Amount:      payment.Amount,
			Category:    payment.Category,
			Source:      payment.Source,
			Destination: payment.Destination,
			Date:        date,
			Attachments: normalizeAttachments(payment.Attachments, payment.AttachmentName, payment.AttachmentDataURL),
		})
	}

	return nil
}

// normalizeAttachments converts attachments to the canonical shape. Records
// written before the app supported multiple attachments carry a single one
// in two singular fields, it becomes a one-element list.
func normalizeAttachments(attachments []Attachment, legacyName, legacyDataURL string) []models.Attachment {
	normalized := make([]models.Attachment, 0, len(attachments)+1)

	for i, attachment := range attachments {
		normalized = append(normalized, models.Attachment{
			Name:     attachment.Name,
			DataURL:  attachment.DataURL,
			Position: uint(i),
		})
	}

	if len(normalized) == 0 && legacyDataURL != "" {
		normalized = append(normalized, models.Attachment{
			Name:    legacyName,
			DataURL: legacyDataURL,
		})
	}

	if len(normalized) == 0 {
		return nil
	}

	return normalized
}

// parseDate parses a legacy date value. An empty value stays zero, the
// models default it on creation.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, format := range dateFormats {
		date, err := time.Parse(format, value)
		if err == nil {
			return date.In(time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date %q", value)
}

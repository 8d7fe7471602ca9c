// Package importer copies the users and customers documents into a relational
// database. Password hashes are carried over untouched and customers are
// re-parented onto the ids the database assigns.
package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"customerhub/internal/model"
	"customerhub/internal/store"
)

// Target is the database side of an import.
type Target interface {
	// FindUserIDByEmail returns the id of an existing user, or 0 if none.
	FindUserIDByEmail(ctx context.Context, email string) (uint, error)
	CreateUser(ctx context.Context, user *model.UserRecord) error
	CreateCustomer(ctx context.Context, customer *model.CustomerRecord) error
}

// Report summarizes an import run.
type Report struct {
	UsersFound        int
	UsersImported     int
	UsersSkipped      int
	UsersFailed       int
	OwnersFound       int
	OwnersUnmatched   int
	CustomersImported int
	CustomersSkipped  int
	CustomersFailed   int
}

// Importer reads the two documents from a FileStore and writes them to a Target.
type Importer struct {
	users     *store.Document[[]model.User]
	customers *store.Document[map[string][]model.Customer]
	target    Target
	logger    *zap.Logger
}

// New creates an importer over the named documents.
func New(s *store.FileStore, usersDocument, customersDocument string, target Target, logger *zap.Logger) *Importer {
	return &Importer{
		users: store.NewDocument(s, usersDocument, func() []model.User {
			return []model.User{}
		}),
		customers: store.NewDocument(s, customersDocument, func() map[string][]model.Customer {
			return map[string][]model.Customer{}
		}),
		target: target,
		logger: logger,
	}
}

// Run performs the import. Failures on individual records are logged and
// counted; only unreadable documents abort the run.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	users, err := im.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	customers, err := im.customers.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}

	report := &Report{UsersFound: len(users), OwnersFound: len(customers)}
	im.logger.Info("starting import",
		zap.Int("users", len(users)),
		zap.Int("owners", len(customers)),
	)

	owners := im.importUsers(ctx, users, report)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	im.importCustomers(ctx, customers, owners, report)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	im.logger.Info("import finished",
		zap.Int("users_imported", report.UsersImported),
		zap.Int("users_skipped", report.UsersSkipped),
		zap.Int("users_failed", report.UsersFailed),
		zap.Int("customers_imported", report.CustomersImported),
		zap.Int("customers_skipped", report.CustomersSkipped),
		zap.Int("customers_failed", report.CustomersFailed),
	)
	return report, nil
}

// importUsers returns the new id of every user, keyed by both the old id and
// the lowercased email.
func (im *Importer) importUsers(ctx context.Context, users []model.User, report *Report) map[string]uint {
	owners := make(map[string]uint, len(users)*2)
	for _, u := range users {
		if ctx.Err() != nil {
			return owners
		}
		email := strings.ToLower(strings.TrimSpace(u.Email))
		log := im.logger.With(zap.String("email", email))

		existing, err := im.target.FindUserIDByEmail(ctx, email)
		if err != nil {
			log.Error("lookup user failed", zap.Error(err))
			report.UsersFailed++
			continue
		}
		if existing != 0 {
			log.Info("user already exists, skipping", zap.Uint("user_id", existing))
			report.UsersSkipped++
			mapOwner(owners, u.ID, email, existing)
			continue
		}

		rec := &model.UserRecord{
			Email:        email,
			PasswordHash: u.PasswordHash,
			Name:         u.Name,
			NationalID:   u.NationalID,
			CreatedAt:    u.CreatedAt,
		}
		if err := im.target.CreateUser(ctx, rec); err != nil {
			log.Error("import user failed", zap.Error(err))
			report.UsersFailed++
			continue
		}
		report.UsersImported++
		mapOwner(owners, u.ID, email, rec.ID)
		log.Info("imported user", zap.Uint("user_id", rec.ID))
	}
	return owners
}

func (im *Importer) importCustomers(ctx context.Context, customers map[string][]model.Customer, owners map[string]uint, report *Report) {
	for owner, list := range customers {
		if ctx.Err() != nil {
			return
		}
		userID, ok := owners[owner]
		if !ok {
			userID, ok = owners[strings.ToLower(owner)]
		}
		if !ok {
			im.logger.Warn("no user for owner, skipping customers",
				zap.String("owner", owner),
				zap.Int("customers", len(list)),
			)
			report.OwnersUnmatched++
			report.CustomersSkipped += len(list)
			continue
		}

		for _, c := range list {
			rec := &model.CustomerRecord{
				UserID:    userID,
				Name:      c.Name,
				Email:     c.Email,
				Phone:     c.Phone,
				Company:   c.Company,
				CreatedAt: c.CreatedAt,
			}
			if c.UpdatedAt != nil {
				rec.UpdatedAt = *c.UpdatedAt
			}
			if err := im.target.CreateCustomer(ctx, rec); err != nil {
				im.logger.Error("import customer failed",
					zap.String("owner", owner),
					zap.String("customer", c.Name),
					zap.Error(err),
				)
				report.CustomersFailed++
				continue
			}
			report.CustomersImported++
		}
	}
}

func mapOwner(owners map[string]uint, oldID, email string, newID uint) {
	if oldID != "" {
		owners[oldID] = newID
	}
	owners[email] = newID
}

// Package storefront is the per-visitor application: one State per browser
// session, changed only by actions run on the shared Loop.
package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/navigation"
	"github.com/example/storefront/internal/domain/session"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logx"
	"github.com/rs/zerolog"
)

// ErrResponseIgnored is returned when a response arrives for a request the
// visitor has since cancelled or replaced.
var ErrResponseIgnored = errors.New("response no longer relevant")

// API is the backend the storefront talks to.
type API interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, p admin.NewProduct) error
	CreateOrder(ctx context.Context, req checkout.OrderRequest) error
	Login(ctx context.Context, creds session.Credentials) (session.User, error)
	Register(ctx context.Context, reg session.Registration) (session.User, error)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Loop *Loop
	// NewAPI returns the backend client of one session. Each session gets
	// its own so credential cookies are not shared between visitors.
	NewAPI  func() (API, error)
	Admins  auth.Authenticator
	Journal store.EventStoreInterface
}

type App struct {
	id      string
	loop    *Loop
	api     API
	admins  auth.Authenticator
	journal store.EventStoreInterface
	log     zerolog.Logger

	state State
}

func NewApp(id string, loop *Loop, api API, admins auth.Authenticator, journal store.EventStoreInterface) *App {
	if admins == nil {
		admins = auth.Disabled{}
	}
	return &App{
		id:      id,
		loop:    loop,
		api:     api,
		admins:  admins,
		journal: journal,
		log:     logx.Component("storefront").With().Str("session", id).Logger(),
	}
}

func (a *App) ID() string {
	return a.id
}

// update runs fn on the loop and returns its error.
func (a *App) update(ctx context.Context, fn func(s *State) error) error {
	var result error
	if err := a.loop.Do(ctx, func() { result = fn(&a.state) }); err != nil {
		return err
	}
	return result
}

// await runs call off the loop and then applies its outcome on the loop.
// The call and the apply step carry on if ctx ends first.
func (a *App) await(ctx context.Context, call func(ctx context.Context) error, apply func(s *State, callErr error) error) error {
	detached := context.WithoutCancel(ctx)
	done := make(chan error, 1)
	go func() {
		callErr := call(detached)
		done <- a.update(detached, func(s *State) error { return apply(s, callErr) })
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) record(aggregateType, eventType string, data any) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.Append(context.Background(), a.id, aggregateType, eventType, data); err != nil {
		a.log.Warn().Err(err).Str("event", eventType).Msg("journal append failed")
	}
}

// Activity lists the journal kept for this session, oldest first.
func (a *App) Activity() []store.Event {
	if a.journal == nil {
		return []store.Event{}
	}
	events := a.journal.GetEvents(a.id)
	if events == nil {
		events = []store.Event{}
	}
	return events
}

// View returns what to render and consumes the pending notice.
func (a *App) View(ctx context.Context) (View, error) {
	var v View
	err := a.update(ctx, func(s *State) error {
		v = s.snapshot(a.id)
		s.Notice = nil
		return nil
	})
	return v, err
}

func (a *App) Navigate(ctx context.Context, to navigation.Page, fromMenu bool) error {
	return a.update(ctx, func(s *State) error {
		a.record(navigation.AggregateType, navigation.EventPageSwitched, s.navigate(to, fromMenu))
		return nil
	})
}

func (a *App) ToggleMenu(ctx context.Context) error {
	return a.update(ctx, func(s *State) error {
		s.Nav.ToggleMenu()
		return nil
	})
}

// LoadCatalog fetches the product list and replaces the catalog with it. A
// failed load is recorded in the catalog state and logged, not returned.
func (a *App) LoadCatalog(ctx context.Context) error {
	var load int
	if err := a.update(ctx, func(s *State) error {
		s.catalogLoad++
		load = s.catalogLoad
		s.Catalog.BeginLoad()
		return nil
	}); err != nil {
		return err
	}

	var products []catalog.Product
	return a.await(ctx,
		func(ctx context.Context) error {
			var err error
			products, err = a.api.ListProducts(ctx)
			return err
		},
		func(s *State, err error) error {
			if load != s.catalogLoad {
				return nil
			}
			if err != nil {
				a.log.Error().Err(err).Msg("failed to load products")
				a.record(catalog.AggregateType, catalog.EventCatalogLoadFailed, s.Catalog.Fail(err))
				return nil
			}
			a.record(catalog.AggregateType, catalog.EventCatalogLoaded, s.Catalog.Replace(products))
			return nil
		})
}

// OpenCheckout shows the buy modal for a catalog product.
func (a *App) OpenCheckout(ctx context.Context, productID int64) error {
	return a.update(ctx, func(s *State) error {
		product, err := s.Catalog.Find(productID)
		if err != nil {
			s.notify(NoticeError, MsgOrderFailed+describe(err))
			return err
		}
		a.record(checkout.AggregateType, checkout.EventCheckoutOpened, s.Checkout.Open(product))
		return nil
	})
}

func (a *App) SelectColor(ctx context.Context, color string) error {
	return a.update(ctx, func(s *State) error {
		if err := s.Checkout.SelectColor(color); err != nil {
			s.notify(NoticeError, MsgOrderFailed+describe(err))
			return err
		}
		return nil
	})
}

// SubmitOrder sends the modal's order. On success the bought unit lands in
// the cart; a response for a cancelled or replaced attempt changes nothing.
func (a *App) SubmitOrder(ctx context.Context, info checkout.CustomerInfo) error {
	var sub checkout.Submission
	if err := a.update(ctx, func(s *State) error {
		var err error
		sub, err = s.Checkout.Submit(info)
		if err != nil {
			s.notify(NoticeError, MsgOrderFailed+describe(err))
			return err
		}
		a.record(checkout.AggregateType, checkout.EventOrderSubmitted, checkout.OrderSubmitted{
			AttemptID:   sub.AttemptID,
			ProductID:   sub.Request.ProductID,
			Color:       sub.Request.Color,
			Total:       sub.Request.Total.String(),
			SubmittedAt: time.Now(),
		})
		return nil
	}); err != nil {
		return err
	}

	return a.await(ctx,
		func(ctx context.Context) error {
			return a.api.CreateOrder(ctx, sub.Request)
		},
		func(s *State, err error) error {
			if !s.Checkout.Current(sub.AttemptID) {
				a.log.Info().Str("attempt", sub.AttemptID).Msg("ignoring order response for a closed checkout")
				return ErrResponseIgnored
			}
			if err != nil {
				s.Checkout.Fail(sub.AttemptID)
				s.notify(NoticeError, MsgOrderFailed+describe(err))
				a.record(checkout.AggregateType, checkout.EventOrderRejected, checkout.OrderRejected{
					AttemptID:  sub.AttemptID,
					Reason:     err.Error(),
					RejectedAt: time.Now(),
				})
				return err
			}

			product, color, _ := s.Checkout.Succeed(sub.AttemptID)
			a.record(checkout.AggregateType, checkout.EventOrderAccepted, checkout.OrderAccepted{
				AttemptID:  sub.AttemptID,
				ProductID:  product.ID,
				Color:      color,
				AcceptedAt: time.Now(),
			})
			eventType, event := s.Cart.Add(product, color)
			a.record(cart.AggregateType, eventType, event)
			s.notify(NoticeSuccess, MsgOrderPlaced)
			return nil
		})
}

func (a *App) CancelCheckout(ctx context.Context) error {
	return a.update(ctx, func(s *State) error {
		if event, ok := s.Checkout.Cancel(); ok {
			a.record(checkout.AggregateType, checkout.EventCheckoutCancelled, event)
		}
		return nil
	})
}

func (a *App) Login(ctx context.Context, creds session.Credentials) error {
	if err := creds.Validate(); err != nil {
		return a.fail(ctx, MsgLoginFailed+describe(err), err)
	}

	var user session.User
	return a.await(ctx,
		func(ctx context.Context) error {
			var err error
			user, err = a.api.Login(ctx, creds)
			return err
		},
		func(s *State, err error) error {
			if err != nil {
				s.notify(NoticeError, MsgLoginFailed+describe(err))
				return err
			}
			a.record(session.AggregateType, session.EventUserLoggedIn, s.Session.SignIn(user))
			a.record(navigation.AggregateType, navigation.EventPageSwitched, s.navigate(navigation.Home, false))
			return nil
		})
}

// Register creates an account. A confirmation that does not match the
// password stops the flow before any request is sent.
func (a *App) Register(ctx context.Context, reg session.Registration) error {
	if err := reg.Validate(); err != nil {
		if errors.Is(err, session.ErrPasswordMismatch) {
			return a.fail(ctx, MsgPasswordMismatch, err)
		}
		return a.fail(ctx, MsgRegisterFailed+describe(err), err)
	}

	var user session.User
	return a.await(ctx,
		func(ctx context.Context) error {
			var err error
			user, err = a.api.Register(ctx, reg)
			return err
		},
		func(s *State, err error) error {
			if err != nil {
				s.notify(NoticeError, MsgRegisterFailed+describe(err))
				return err
			}
			a.record(session.AggregateType, session.EventUserRegistered, session.UserRegistered{
				UserID:       user.ID,
				Email:        user.Email,
				RegisteredAt: time.Now(),
			})
			a.record(session.AggregateType, session.EventUserLoggedIn, s.Session.SignIn(user))
			a.record(navigation.AggregateType, navigation.EventPageSwitched, s.navigate(navigation.Home, false))
			return nil
		})
}

// Logout forgets the customer locally. The backend is not told.
func (a *App) Logout(ctx context.Context) error {
	return a.update(ctx, func(s *State) error {
		if s.Session.SignedIn() {
			a.record(session.AggregateType, session.EventUserLoggedOut, s.Session.SignOut())
		}
		return nil
	})
}

func (a *App) SendContact(ctx context.Context, msg ContactMessage) error {
	return a.update(ctx, func(s *State) error {
		if err := msg.Validate(); err != nil {
			s.notify(NoticeError, describe(err))
			return err
		}
		s.notify(NoticeSuccess, MsgContactSent)
		return nil
	})
}

// AdminLogin opens the admin gate. The outcome is dropped if the visitor
// left the admin page while the check ran.
func (a *App) AdminLogin(ctx context.Context, creds auth.Credentials) error {
	return a.await(ctx,
		func(ctx context.Context) error {
			return a.admins.Authenticate(ctx, creds)
		},
		func(s *State, err error) error {
			if s.Nav.Current != navigation.Admin {
				return ErrResponseIgnored
			}
			if err != nil {
				a.log.Debug().Err(err).Msg("admin login rejected")
				s.notify(NoticeError, MsgInvalidCredentials)
				return err
			}
			a.record(admin.AggregateType, admin.EventAdminSignedIn, s.Admin.SignIn(creds.Username))
			return nil
		})
}

func (a *App) AdminLogout(ctx context.Context) error {
	return a.update(ctx, func(s *State) error {
		if s.Admin.Authenticated {
			a.record(admin.AggregateType, admin.EventAdminSignedOut, s.Admin.SignOut())
		}
		return nil
	})
}

func (a *App) AdminToggleColor(ctx context.Context, color string) error {
	return a.update(ctx, func(s *State) error {
		if err := s.Admin.ToggleColor(color); err != nil {
			s.notify(NoticeError, describe(err))
			return err
		}
		return nil
	})
}

// AdminCreateProduct submits the draft with the selected colors and reloads
// the catalog once the backend accepts it.
func (a *App) AdminCreateProduct(ctx context.Context, draft admin.Draft) error {
	var product admin.NewProduct
	if err := a.update(ctx, func(s *State) error {
		var err error
		product, err = s.Admin.Prepare(draft)
		if err != nil {
			s.notify(NoticeError, MsgProductFailed+describe(err))
			return err
		}
		a.record(admin.AggregateType, admin.EventProductSubmitted, admin.ProductSubmitted{
			Name:        product.Name,
			Price:       product.Price.String(),
			Colors:      product.Colors,
			SubmittedAt: time.Now(),
		})
		return nil
	}); err != nil {
		return err
	}

	err := a.await(ctx,
		func(ctx context.Context) error {
			return a.api.CreateProduct(ctx, product)
		},
		func(s *State, err error) error {
			if err != nil {
				s.notify(NoticeError, MsgProductFailed+describe(err))
				a.record(admin.AggregateType, admin.EventProductCreateFailed, admin.ProductCreateFailed{
					Name:     product.Name,
					Reason:   err.Error(),
					FailedAt: time.Now(),
				})
				return err
			}
			s.Admin.Created()
			s.notify(NoticeSuccess, MsgProductAdded)
			a.record(admin.AggregateType, admin.EventProductCreated, admin.ProductCreated{
				Name:      product.Name,
				CreatedAt: time.Now(),
			})
			return nil
		})
	if err != nil {
		return err
	}
	return a.LoadCatalog(context.WithoutCancel(ctx))
}

// fail shows an error notice for a check made before any request.
func (a *App) fail(ctx context.Context, message string, cause error) error {
	if err := a.update(ctx, func(s *State) error {
		s.notify(NoticeError, message)
		return nil
	}); err != nil {
		return err
	}
	return cause
}

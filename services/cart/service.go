package cart

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/lib/mylog"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
)

type service struct {
	cartStore mystore.Store[cartmodel.Cart]
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

func newService(store mystore.Store[cartmodel.Cart], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		cartStore: store,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}

func (s *service) listCarts(c context.Context) ([]cartmodel.Cart, error) {
	carts, err := s.cartStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(carts, func(i, j int) bool {
		return carts[i].CreatedAt.After(carts[j].CreatedAt)
	})
	return carts, nil
}

func (s *service) createNewCart(c context.Context) (cartmodel.Cart, error) {
	cartUID := s.uuider.Create()

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Creating new cart with uid %s", cartUID)

	cart := cartmodel.Cart{
		UID:       cartUID,
		CreatedAt: s.nower.Now(),
		Items:     defaultItems(),
	}

	err := s.cartStore.Put(c, cartUID, cart)
	if err != nil {
		return cartmodel.Cart{}, myerrors.NewInternalError(err)
	}

	return cart, nil
}

func (s *service) getCart(c context.Context, cartUID string) (cartmodel.Cart, error) {
	cart, found, err := s.cartStore.Get(c, cartUID)
	if err != nil {
		return cartmodel.Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return cartmodel.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
	}

	return cart, nil
}

func (s *service) addItem(c context.Context, cartUID string, description string, price string) (cartmodel.Cart, error) {
	if description == "" {
		return cartmodel.Cart{}, myerrors.NewInvalidInputErrorf("missing item description")
	}
	itemPrice, err := decimal.NewFromString(price)
	if err != nil {
		return cartmodel.Cart{}, myerrors.NewInvalidInputErrorf("invalid price '%s': %s", price, err)
	}
	if itemPrice.IsNegative() {
		return cartmodel.Cart{}, myerrors.NewInvalidInputErrorf("price '%s' must not be negative", price)
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Add item '%s' (%s) to cart %s", description, itemPrice, cartUID)

	now := s.nower.Now()
	var cart cartmodel.Cart
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		cart, found, err = s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
		}

		cart.Items = append(cart.Items, cartmodel.CartItem{
			UID:         s.uuider.Create(),
			Description: description,
			Price:       itemPrice,
		})
		cart.LastModified = &now

		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return cartmodel.Cart{}, err
	}

	return cart, nil
}

func defaultItems() []cartmodel.CartItem {
	return []cartmodel.CartItem{
		{
			UID:         "product_hockey_stick",
			Description: "Hockey stick",
			Price:       decimal.RequireFromString("19.99"),
		},
		{
			UID:         "product_tennis_balls",
			Description: "Tennis balls",
			Price:       decimal.RequireFromString("5.00"),
		},
	}
}

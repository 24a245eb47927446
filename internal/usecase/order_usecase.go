package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sanitize"
)

var emailLike = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type OrderUsecase struct {
	tx          repo.TransactionManager
	orders      repo.OrderRepository
	audit       repo.AuditLogRepository
	idGen       IDGenerator
	clock       Clock
	shippingFee decimal.Decimal
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	audit repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	shippingFee decimal.Decimal,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orders:      orders,
		audit:       audit,
		idGen:       idGen,
		clock:       clock,
		shippingFee: shippingFee,
	}
}

type CartItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PlaceOrderInput struct {
	Items           []CartItemInput
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   string

	//クライアント申告の合計。参考値であり、計算には使わない。
	TotalAmount decimal.Decimal
}

// 成功時に呼び出し側が頼ってよいのはこの2つだけ。
type OrderConfirmation struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
}

// PlaceOrder は注文ヘッダと明細を1つの論理単位として書き込む。
// 明細の小計はサーバ側で再計算し、クライアントの金額は信用しない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID *string, in PlaceOrderInput) (OrderConfirmation, error) {
	if len(in.Items) == 0 {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, item := range in.Items {
		//書き込み経路は読み取りと違い、不正IDを黙って落とさない
		if sanitize.UUID(item.ProductID) == "" {
			return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if item.Quantity <= 0 {
			return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "customer_name required")
	}
	if !emailLike.MatchString(strings.TrimSpace(in.CustomerEmail)) {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "invalid customer_email")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "customer_phone required")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return OrderConfirmation{}, NewHTTPError(http.StatusBadRequest, "payment_method required")
	}

	now := u.clock.Now()
	orderID := u.idGen.NewID()
	orderNumber := newOrderNumber(now)

	var out OrderConfirmation

	//ヘッダ＋明細はトランザクションで1単位
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.OrderItem, 0, len(in.Items))
		subtotal := decimal.Zero

		for _, ci := range in.Items {
			p, err := r.Products().FindByID(ctx, sanitize.UUID(ci.ProductID))
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}

			//単価は現在のDB価格（割引があれば割引価格）のスナップショット
			unit := p.Price
			if p.DiscountPrice != nil {
				unit = *p.DiscountPrice
			}

			lineSubtotal := unit.Mul(decimal.NewFromInt(ci.Quantity))

			items = append(items, model.OrderItem{
				ID:                  u.idGen.NewID(),
				ProductID:           p.ID,
				ProductNameSnapshot: p.NameEn,
				UnitPrice:           unit,
				Quantity:            ci.Quantity,
				Subtotal:            lineSubtotal,
				CreatedAt:           now,
			})
			subtotal = subtotal.Add(lineSubtotal)
		}

		order := model.Order{
			ID:              orderID,
			OrderNumber:     orderNumber,
			UserID:          userID,
			Status:          model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
			Subtotal:        subtotal,
			ShippingFee:     u.shippingFee,
			TotalAmount:     subtotal.Add(u.shippingFee),
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := r.Orders().Create(ctx, order); err != nil {
			//注文番号は時刻＋乱数で確率的にしか一意でない。
			//衝突はリトライ可能なエラーとして呼び出し側へ返す。
			if errors.Is(err, repo.ErrDuplicate) {
				return NewHTTPError(http.StatusConflict, "order number collision, retry")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			//ここで失敗するとトランザクションごとロールバックされ、
			//明細なしのヘッダは残らない
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderConfirmation{ID: orderID, OrderNumber: orderNumber}
		return nil
	})

	if err != nil {
		return OrderConfirmation{}, err
	}
	return out, nil
}

// 注文番号：時刻＋乱数サフィックス。一意性はDBのunique indexで担保する。
func newOrderNumber(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		//乱数が取れない環境はナノ秒で代用
		n := now.Nanosecond()
		buf = []byte{byte(n), byte(n >> 8), byte(n >> 16)}
	}
	return "ORD-" + now.Format("20060102150405") + "-" + strings.ToUpper(hex.EncodeToString(buf))
}

type OrderListOutput struct {
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page int, limit int) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderListOutput{
		Orders:     orders,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の注文は「存在しない扱い」にする
	if o.UserID == nil || *o.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return o, nil
}

func (u *OrderUsecase) AdminListOrders(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderListOutput{
		Orders:     orders,
		Pagination: NewPagination(f.Page, f.Limit, total),
	}, nil
}

func (u *OrderUsecase) AdminGetOrder(ctx context.Context, orderID string) (model.Order, error) {
	if sanitize.UUID(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

func (u *OrderUsecase) AdminUpdateStatus(ctx context.Context, adminUserID string, orderID string, status string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.OrderStatus(status).Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	before, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	writeAuditLog(ctx, u.audit, u.idGen, u.clock, adminUserID,
		model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, orderID,
		map[string]string{"status": string(before.Status)},
		map[string]string{"status": status},
	)
	return nil
}

func (u *OrderUsecase) AdminUpdatePaymentStatus(ctx context.Context, adminUserID string, orderID string, status string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.PaymentStatus(status).Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	before, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orders.UpdatePaymentStatus(ctx, orderID, model.PaymentStatus(status)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	writeAuditLog(ctx, u.audit, u.idGen, u.clock, adminUserID,
		model.AuditActionUpdatePaymentStatus, model.AuditResourceOrder, orderID,
		map[string]string{"payment_status": string(before.PaymentStatus)},
		map[string]string{"payment_status": status},
	)
	return nil
}

//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"cinema-booking/internal/domain/user"
	"cinema-booking/internal/handler/dto/request"
	"cinema-booking/internal/handler/dto/response"
	"cinema-booking/tests/common/authtest"
	"cinema-booking/tests/common/dbtest"
	"cinema-booking/tests/common/helper"
	"cinema-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

type testContext struct {
	catalog *dbtest.CatalogFixture
	userID  int64
	token   string
}

func (s *bookingSuite) seedAndLogin(email string) *testContext {
	t := s.T()
	cat := dbtest.SeedCatalog(t, s.DB)
	userID, token := authtest.CreateAndLogin(t, s.DB, s.Router, email, string(user.RoleCustomer))
	return &testContext{catalog: cat, userID: userID, token: token}
}

func (s *bookingSuite) createBooking(tc *testContext, seatIDs []int64, personType string) *response.BookingResponse {
	t := s.T()
	tickets := make([]request.TicketRequest, len(seatIDs))
	for i, id := range seatIDs {
		tickets[i] = request.TicketRequest{SeatID: id, PersonType: personType}
	}
	w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
		request.CreateBookingRequest{ScreeningID: tc.catalog.ScreeningID, Tickets: tickets}, tc.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.BookingResponse
	require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
	return &res
}

func (s *bookingSuite) bookingStatus(bookingID int64) string {
	t := s.T()
	var status string
	err := s.DB.QueryRow(t.Context(),
		"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("大人と子供の予約が作成できること", func() {
		t := s.T()
		tc := s.seedAndLogin("create@example.com")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ScreeningID: tc.catalog.ScreeningID,
				Tickets: []request.TicketRequest{
					{SeatID: tc.catalog.SeatIDs[0], PersonType: "Adult"},
					{SeatID: tc.catalog.SeatIDs[1], PersonType: "Child"},
				},
			}, tc.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.BookingResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "pending", res.Status)
		require.Equal(t, tc.userID, res.UserID)
		require.Len(t, res.Tickets, 2)
		// 12.00 + 8.40 (子供30%引き)
		require.True(t, res.BasePrice.Equal(decimal.NewFromFloat(20.40)), res.BasePrice.String())
		require.True(t, res.DiscountedPrice.Equal(decimal.NewFromFloat(20.40)), res.DiscountedPrice.String())
		require.NotNil(t, res.PaymentOrderID, "支払いオーダーIDが未採番")
	})

	s.Run("VIP席のサーチャージが加算されること", func() {
		t := s.T()
		tc := s.seedAndLogin("vip@example.com")

		res := s.createBooking(tc, []int64{tc.catalog.VIPSeatID}, "Adult")
		require.True(t, res.DiscountedPrice.Equal(decimal.NewFromInt(17)), res.DiscountedPrice.String())
	})

	s.Run("確保済みの座席は409になること", func() {
		t := s.T()
		tc := s.seedAndLogin("taken@example.com")
		s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ScreeningID: tc.catalog.ScreeningID,
				Tickets:     []request.TicketRequest{{SeatID: tc.catalog.SeatIDs[0], PersonType: "Adult"}},
			}, tc.token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("存在しない上映は404になること", func() {
		t := s.T()
		tc := s.seedAndLogin("noscreening@example.com")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ScreeningID: 999999,
				Tickets:     []request.TicketRequest{{SeatID: tc.catalog.SeatIDs[0], PersonType: "Adult"}},
			}, tc.token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("存在しない人種別は404になること", func() {
		t := s.T()
		tc := s.seedAndLogin("noperson@example.com")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ScreeningID: tc.catalog.ScreeningID,
				Tickets:     []request.TicketRequest{{SeatID: tc.catalog.SeatIDs[0], PersonType: "Senior"}},
			}, tc.token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("同一リクエスト内の座席重複は400になること", func() {
		t := s.T()
		tc := s.seedAndLogin("dupseat@example.com")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ScreeningID: tc.catalog.ScreeningID,
				Tickets: []request.TicketRequest{
					{SeatID: tc.catalog.SeatIDs[0], PersonType: "Adult"},
					{SeatID: tc.catalog.SeatIDs[0], PersonType: "Child"},
				},
			}, tc.token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("チケットなしはバリデーションで400になること", func() {
		t := s.T()
		tc := s.seedAndLogin("notickets@example.com")

		w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			map[string]any{"screeningId": tc.catalog.ScreeningID, "tickets": []any{}}, tc.token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestConcurrentSeatBooking() {
	s.Run("同一座席への同時予約は片方だけ成功すること", func() {
		t := s.T()
		tc := s.seedAndLogin("race1@example.com")
		_, token2 := authtest.CreateAndLogin(t, s.DB, s.Router, "race2@example.com", string(user.RoleCustomer))

		body := request.CreateBookingRequest{
			ScreeningID: tc.catalog.ScreeningID,
			Tickets:     []request.TicketRequest{{SeatID: tc.catalog.SeatIDs[0], PersonType: "Adult"}},
		}

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i, token := range []string{tc.token, token2} {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				w := helper.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, token)
				codes[i] = w.Code
			}(i, token)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "予約成功はちょうど1件であるべき: %v", codes)
		require.Equal(t, 1, conflicted, "座席競合はちょうど1件であるべき: %v", codes)
	})
}

func (s *bookingSuite) TestBookingLifecycle() {
	s.Run("確定した予約は再確定できないこと", func() {
		t := s.T()
		tc := s.seedAndLogin("confirm@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		confirmURL := fmt.Sprintf("%s/%d/confirm", bookingsURL, created.ID)
		w := helper.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, tc.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "confirmed", s.bookingStatus(created.ID))

		w = helper.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, tc.token)
		require.Equal(t, http.StatusConflict, w.Code, "確定済み予約の再確定は拒否されるべき")
	})

	s.Run("キャンセルで座席が解放され再予約できること", func() {
		t := s.T()
		tc := s.seedAndLogin("cancel@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		cancelURL := fmt.Sprintf("%s/%d/cancel", bookingsURL, created.ID)
		w := helper.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, tc.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", s.bookingStatus(created.ID))

		// 解放された座席を再予約
		rebooked := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")
		require.NotEqual(t, created.ID, rebooked.ID)
	})

	s.Run("確定済みの予約もキャンセルできること", func() {
		t := s.T()
		tc := s.seedAndLogin("cancelconfirmed@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%d/confirm", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%d/cancel", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", s.bookingStatus(created.ID))
	})

	s.Run("キャンセル済みの予約はキャンセルも確定もできないこと", func() {
		t := s.T()
		tc := s.seedAndLogin("doublecancel@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%d/cancel", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%d/cancel", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusConflict, w.Code)

		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%d/confirm", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func (s *bookingSuite) TestGetAndListBookings() {
	s.Run("自分の予約を取得できること", func() {
		t := s.T()
		tc := s.seedAndLogin("get@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%d", bookingsURL, created.ID), nil, tc.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.BookingResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "The Long Night", res.MovieTitle)

		opts := []cmp.Option{
			cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
		}
		if diff := cmp.Diff(created, &res, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("他人の予約は404になること", func() {
		t := s.T()
		tc := s.seedAndLogin("owner@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		_, otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleCustomer))
		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%d", bookingsURL, created.ID), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code, "他人の予約は存在を漏らさないこと")
	})

	s.Run("管理者は他人の予約を参照できること", func() {
		t := s.T()
		tc := s.seedAndLogin("customer2@example.com")
		created := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")

		_, adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%d", bookingsURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("予約一覧は自分の分だけ返ること", func() {
		t := s.T()
		tc := s.seedAndLogin("list@example.com")
		s.createBooking(tc, []int64{tc.catalog.SeatIDs[0]}, "Adult")
		s.createBooking(tc, []int64{tc.catalog.SeatIDs[1], tc.catalog.SeatIDs[2]}, "Adult")

		other := &testContext{catalog: tc.catalog}
		other.userID, other.token = authtest.CreateAndLogin(t, s.DB, s.Router, "listother@example.com", string(user.RoleCustomer))
		s.createBooking(other, []int64{tc.catalog.SeatIDs[3]}, "Adult")

		w := helper.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, tc.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.BookingListResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &list))
		require.Len(t, list, 2)
		require.Equal(t, int32(2), list[0].TicketCount, "新しい予約が先頭に来ること")
	})
}

func (s *bookingSuite) TestOfferApplied() {
	s.Run("チケット枚数オファーが合計に適用されること", func() {
		t := s.T()
		tc := s.seedAndLogin("offer@example.com")
		dbtest.SeedOffer(t, s.DB, "Group discount", 10, false,
			[]dbtest.OfferConditionSpec{{Type: "MinimumTicketCount", Value: "3"}},
			[]dbtest.OfferEffectSpec{{Type: "percent", Value: decimal.NewFromInt(10)}})

		res := s.createBooking(tc, []int64{tc.catalog.SeatIDs[0], tc.catalog.SeatIDs[1], tc.catalog.SeatIDs[2]}, "Adult")
		// 36.00 から10%引き
		require.True(t, res.BasePrice.Equal(decimal.NewFromInt(36)), res.BasePrice.String())
		require.True(t, res.DiscountedPrice.Equal(decimal.NewFromFloat(32.40)), res.DiscountedPrice.String())
		require.Len(t, res.AppliedOffers, 1)
		require.Equal(t, "Group discount", res.AppliedOffers[0].OfferName)
	})
}

package wallet

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/chapool/go-hdpay/internal/api/httperrors"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/labstack/echo/v4"
)

func currencyParam(c echo.Context) chain.Currency {
	return chain.ParseCurrency(c.Param("currency"))
}

func requiredParam(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Missing "+name+".")
	}

	return v, nil
}

func indexParam(c echo.Context) (uint32, error) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 32)
	if err != nil {
		return 0, httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Index must be an unsigned 32 bit integer.")
	}

	return uint32(index), nil
}

package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

const (
	tokenPath    = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath  = "/mpesa/stkpush/v1/processrequest"
	timestampFmt = "20060102150405"
)

// DarajaGateway talks to the live provider API: a short-lived bearer token per push,
// then the STK push request itself. No lock is held across either call.
type DarajaGateway struct {
	BaseURL     string
	CallbackURL string
	client      *http.Client
}

func NewDarajaGateway(baseURL, callbackURL string, timeout time.Duration) *DarajaGateway {
	return &DarajaGateway{
		BaseURL:     baseURL,
		CallbackURL: callbackURL,
		client:      &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

func (g *DarajaGateway) RequestPush(ctx context.Context, req domain.PushRequest, creds domain.DarajaCredentials) (*domain.PushResponse, error) {
	token, err := g.fetchToken(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamAuth, err)
	}

	timestamp := time.Now().Format(timestampFmt)
	password := base64.StdEncoding.EncodeToString([]byte(creds.ShortCode + creds.Passkey + timestamp))

	description := req.Description
	if description == "" {
		description = "Payment"
	}

	requestBodyBytes, err := json.Marshal(stkPushRequest{
		BusinessShortCode: creds.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            int64(req.Amount),
		PartyA:            req.PhoneNumber,
		PartyB:            creds.ShortCode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       g.CallbackURL,
		AccountReference:  req.Reference,
		TransactionDesc:   description,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.BaseURL+stkPushPath, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	response, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRequest, response.StatusCode, string(responseBodyBytes))
	}

	var pushResponse stkPushResponse
	if err := json.Unmarshal(responseBodyBytes, &pushResponse); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}

	if pushResponse.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: response code %s: %s", domain.ErrUpstreamRequest, pushResponse.ResponseCode, pushResponse.ResponseDescription)
	}

	return &domain.PushResponse{
		MerchantRequestID: pushResponse.MerchantRequestID,
		CheckoutRequestID: pushResponse.CheckoutRequestID,
	}, nil
}

func (g *DarajaGateway) fetchToken(ctx context.Context, creds domain.DarajaCredentials) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", g.BaseURL+tokenPath, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(creds.ConsumerKey, creds.ConsumerSecret)

	response, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("token endpoint returned status %d", response.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(responseBodyBytes, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access token")
	}

	return token.AccessToken, nil
}

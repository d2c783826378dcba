package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"authentication/lib/config"
	"authentication/lib/data"
	"authentication/lib/models"
	"authentication/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAuthRepository struct {
	Outcome    *models.AuthOutcome
	Err        error
	SignOutErr error
	Calls      []string
}

func (m *MockAuthRepository) Authenticate(ctx context.Context, userName, password string) (*models.AuthOutcome, error) {
	m.Calls = append(m.Calls, "Authenticate:"+userName)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Outcome, nil
}

func (m *MockAuthRepository) RefreshToken(ctx context.Context, refreshToken, userName string) (*models.AuthOutcome, error) {
	m.Calls = append(m.Calls, "RefreshToken:"+refreshToken)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Outcome, nil
}

func (m *MockAuthRepository) SignOut(ctx context.Context, accessToken string) error {
	m.Calls = append(m.Calls, "SignOut:"+accessToken)
	return m.SignOutErr
}

var validCredentials = config.ProviderCredentials{
	Region:     "us-east-1",
	UserPoolID: "us-east-1_pool",
	ClientID:   "client-123",
}

func newDispatcher(repository data.AuthRepository) *Dispatcher {
	return &Dispatcher{
		Repository:  repository,
		Credentials: validCredentials,
		Logger:      logrus.New(),
	}
}

func decodeBody(t *testing.T, response events.APIGatewayProxyResponse) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	return body
}

func Test_Dispatch_AuthenticationScenario(t *testing.T) {
	//Arrange
	repository := &MockAuthRepository{
		Outcome: &models.AuthOutcome{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600},
	}
	dispatcher := newDispatcher(repository)

	//Act
	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"authentication","userName":"alice","password":"secret"}`)

	//Assert
	assert.Equal(t, http.StatusOK, actual.StatusCode)
	assert.JSONEq(t, `{"accessToken":"AT1","refreshToken":"RT1","expiresIn":3600}`, actual.Body)
	assert.Equal(t, []string{"Authenticate:alice"}, repository.Calls)
}

func Test_Dispatch_AuthenticationKeepsKeysWhenProviderOmitsThem(t *testing.T) {
	dispatcher := newDispatcher(&MockAuthRepository{Outcome: &models.AuthOutcome{}})

	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"authentication","userName":"alice","password":"secret"}`)

	assert.Equal(t, http.StatusOK, actual.StatusCode)
	assert.JSONEq(t, `{"accessToken":"","refreshToken":"","expiresIn":0}`, actual.Body)
}

func Test_Dispatch_NewPasswordChallenge(t *testing.T) {
	//Arrange
	dispatcher := newDispatcher(&MockAuthRepository{
		Outcome: &models.AuthOutcome{ChallengeName: "NEW_PASSWORD_REQUIRED"},
	})

	//Act
	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"authentication","userName":"alice","password":"temp"}`)

	//Assert
	assert.Equal(t, http.StatusUnauthorized, actual.StatusCode)
	assert.JSONEq(t, `{"error":{"code":401,"message":"New password is required"}}`, actual.Body)
	assert.NotContains(t, actual.Body, "accessToken")
	assert.NotContains(t, actual.Body, "refreshToken")
}

func Test_Dispatch_OtherChallengeReturnsEmptyTokens(t *testing.T) {
	dispatcher := newDispatcher(&MockAuthRepository{
		Outcome: &models.AuthOutcome{ChallengeName: "SOFTWARE_TOKEN_MFA"},
	})

	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"authentication","userName":"alice","password":"secret"}`)

	assert.Equal(t, http.StatusOK, actual.StatusCode)
	assert.JSONEq(t, `{"accessToken":"","refreshToken":"","expiresIn":0}`, actual.Body)
}

func Test_Dispatch_RefreshNeverReturnsRefreshToken(t *testing.T) {
	//Arrange
	repository := &MockAuthRepository{
		Outcome: &models.AuthOutcome{AccessToken: "AT2", RefreshToken: "leaked", ExpiresIn: 3600},
	}
	dispatcher := newDispatcher(repository)

	//Act
	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"refresh_token","refreshToken":"RT1"}`)

	//Assert
	assert.Equal(t, http.StatusOK, actual.StatusCode)
	body := decodeBody(t, actual)
	assert.Equal(t, "AT2", body["accessToken"])
	assert.Equal(t, float64(3600), body["expiresIn"])
	assert.NotContains(t, body, "refreshToken")
	assert.Equal(t, []string{"RefreshToken:RT1"}, repository.Calls)
}

func Test_Dispatch_SignOut(t *testing.T) {
	repository := &MockAuthRepository{}
	dispatcher := newDispatcher(repository)

	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"sign_out","accessToken":"AT1"}`)

	assert.Equal(t, http.StatusOK, actual.StatusCode)
	assert.JSONEq(t, `{"message":"Sign out successful"}`, actual.Body)
	assert.Equal(t, []string{"SignOut:AT1"}, repository.Calls)
}

func Test_Dispatch_SignOutTwice(t *testing.T) {
	repository := &MockAuthRepository{}
	dispatcher := newDispatcher(repository)
	body := `{"grantType":"sign_out","accessToken":"AT1"}`

	first := dispatcher.Dispatch(context.Background(), body)
	second := dispatcher.Dispatch(context.Background(), body)

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, first.Body, second.Body)
	assert.Len(t, repository.Calls, 2)
}

func Test_Dispatch_MissingAccessTokenScenario(t *testing.T) {
	repository := &MockAuthRepository{}
	dispatcher := newDispatcher(repository)

	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"sign_out"}`)

	assert.Equal(t, http.StatusBadRequest, actual.StatusCode)
	assert.JSONEq(t, `{"error":{"code":400,"message":"Access token not found in body"}}`, actual.Body)
	assert.Empty(t, repository.Calls)
}

func Test_Dispatch_InvalidRequestsNeverReachProvider(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing body", "", "Request body is missing"},
		{"malformed body", "{not json", "Request body is not valid JSON"},
		{"missing grant type", `{"userName":"alice"}`, "Invalid grant type"},
		{"unsupported grant type", `{"grantType":"password"}`, "Invalid grant type"},
		{"missing credentials", `{"grantType":"authentication","userName":"alice"}`, "Username or password were not found in body"},
		{"missing refresh token", `{"grantType":"refresh_token"}`, "Refresh token not found in body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &MockAuthRepository{}
			dispatcher := newDispatcher(repository)

			actual := dispatcher.Dispatch(context.Background(), tt.body)

			assert.Equal(t, http.StatusBadRequest, actual.StatusCode)
			assert.Equal(t, map[string]interface{}{
				"error": map[string]interface{}{"code": float64(400), "message": tt.message},
			}, decodeBody(t, actual))
			assert.Empty(t, repository.Calls)
		})
	}
}

func Test_Dispatch_ProviderFailureIs502ForEveryOperation(t *testing.T) {
	networkErr := &data.ProviderError{Operation: "AdminInitiateAuth", Err: errors.New("dial tcp: i/o timeout")}

	tests := []struct {
		name       string
		body       string
		repository *MockAuthRepository
	}{
		{"authentication", `{"grantType":"authentication","userName":"alice","password":"secret"}`, &MockAuthRepository{Err: networkErr}},
		{"refresh token", `{"grantType":"refresh_token","refreshToken":"RT1"}`, &MockAuthRepository{Err: networkErr}},
		{"sign out", `{"grantType":"sign_out","accessToken":"AT1"}`, &MockAuthRepository{SignOutErr: networkErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := newDispatcher(tt.repository).Dispatch(context.Background(), tt.body)

			assert.Equal(t, http.StatusBadGateway, actual.StatusCode)
			assert.JSONEq(t, `{"error":{"code":502,"message":"dial tcp: i/o timeout"}}`, actual.Body)
		})
	}
}

func Test_Dispatch_ProviderRejectionCarriesProviderMessage(t *testing.T) {
	rejection := &data.ProviderError{
		Operation: "AdminInitiateAuth",
		Err:       &smithy.GenericAPIError{Code: "NotAuthorizedException", Message: "Incorrect username or password."},
	}
	dispatcher := newDispatcher(&MockAuthRepository{Err: rejection})

	actual := dispatcher.Dispatch(context.Background(), `{"grantType":"authentication","userName":"alice","password":"wrong"}`)

	assert.Equal(t, http.StatusBadGateway, actual.StatusCode)
	assert.JSONEq(t, `{"error":{"code":502,"message":"Incorrect username or password."}}`, actual.Body)
}

func Test_Dispatch_MissingConfiguration(t *testing.T) {
	bodies := []string{
		`{"grantType":"authentication","userName":"alice","password":"secret"}`,
		`{"grantType":"refresh_token","refreshToken":"RT1"}`,
		`{"grantType":"sign_out","accessToken":"AT1"}`,
		``,
	}

	for _, body := range bodies {
		repository := &MockAuthRepository{}
		dispatcher := &Dispatcher{
			Repository:  repository,
			Credentials: config.ProviderCredentials{Region: "us-east-1", UserPoolID: "us-east-1_pool"},
			Logger:      logrus.New(),
		}

		actual := dispatcher.Dispatch(context.Background(), body)

		assert.Equal(t, http.StatusInternalServerError, actual.StatusCode, body)
		assert.JSONEq(t, `{"error":{"code":500,"message":"Internal configuration error"}}`, actual.Body)
		assert.Empty(t, repository.Calls)
	}
}

func Test_Dispatch_HeadersStableAcrossOperations(t *testing.T) {
	//Arrange
	dispatcher := newDispatcher(&MockAuthRepository{
		Outcome: &models.AuthOutcome{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600},
	})
	ctx := util.WithCorrelationID(context.Background(), "req-1")

	//Act
	successes := []events.APIGatewayProxyResponse{
		dispatcher.Dispatch(ctx, `{"grantType":"authentication","userName":"alice","password":"secret"}`),
		dispatcher.Dispatch(ctx, `{"grantType":"refresh_token","refreshToken":"RT1"}`),
		dispatcher.Dispatch(ctx, `{"grantType":"sign_out","accessToken":"AT1"}`),
	}
	failures := []events.APIGatewayProxyResponse{
		dispatcher.Dispatch(ctx, `{"grantType":"sign_out"}`),
		dispatcher.Dispatch(ctx, ``),
		newDispatcher(&MockAuthRepository{Err: errors.New("boom")}).Dispatch(ctx, `{"grantType":"refresh_token","refreshToken":"RT1"}`),
	}

	//Assert
	for _, response := range successes {
		assert.Equal(t, successes[0].Headers, response.Headers)
		assert.NotContains(t, response.Headers, "Access-Control-Allow-Headers")
	}
	for _, response := range failures {
		assert.Equal(t, failures[0].Headers, response.Headers)
		assert.Equal(t, "Content-Type", response.Headers["Access-Control-Allow-Headers"])
		for key, value := range successes[0].Headers {
			assert.Equal(t, value, response.Headers[key])
		}
	}
}

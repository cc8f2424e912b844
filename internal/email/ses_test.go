package email

import (
	"context"
	"testing"
)

func TestNewSESClientValidation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		accessKey string
		secretKey string
		region    string
		sender    string
		wantErr   bool
	}{
		{name: "missing region", sender: "league@example.com", wantErr: true},
		{name: "missing sender", region: "eu-central-1", wantErr: true},
		{name: "half credentials", accessKey: "AKID", region: "eu-central-1", sender: "league@example.com", wantErr: true},
		{name: "static credentials", accessKey: "AKID", secretKey: "SECRET", region: "eu-central-1", sender: "league@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewSESClient(ctx, tt.accessKey, tt.secretKey, tt.region, tt.sender)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || client == nil {
				t.Fatalf("NewSESClient() = %v, %v", client, err)
			}
		})
	}
}

func TestSESClientRejectsMissingRecipient(t *testing.T) {
	var nilClient *SESClient
	if err := nilClient.Send(context.Background(), "a@example.com", "s", "b"); err == nil {
		t.Fatal("expected error from nil client")
	}

	client, err := NewSESClient(context.Background(), "AKID", "SECRET", "eu-central-1", "league@example.com")
	if err != nil {
		t.Fatalf("NewSESClient() error = %v", err)
	}
	if err := client.SendFrom(context.Background(), "", "s", "b", ""); err == nil {
		t.Fatal("expected error for missing recipient")
	}
}

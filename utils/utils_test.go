package utils

import "testing"

func TestRoleClaimsRoundTrip(t *testing.T) {
	token, err := GenerateJWT("agent@apexlines.example", 42, RoleFreightAgent, 7)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	rc := DecodeRoleClaims(token)
	if rc.Email != "agent@apexlines.example" {
		t.Fatalf("email = %q", rc.Email)
	}
	if rc.UserID != 42 {
		t.Fatalf("userID = %d, want 42", rc.UserID)
	}
	if rc.RoleName != RoleFreightAgent {
		t.Fatalf("roleName = %q, want %q", rc.RoleName, RoleFreightAgent)
	}
	if rc.AgentID != 7 {
		t.Fatalf("agentID = %d, want 7", rc.AgentID)
	}
}

func TestAgentIDOmittedForNonAgents(t *testing.T) {
	token, err := GenerateJWT("admin@freightline.example", 1, RoleAdmin, 0)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if rc := DecodeRoleClaims(token); rc.AgentID != 0 {
		t.Fatalf("agentID = %d, want 0", rc.AgentID)
	}
}

func TestDecodeRoleClaimsFailsClosed(t *testing.T) {
	for _, tokenStr := range []string{
		"",
		"not-a-token",
		"eyJhbGciOiJIUzI1NiJ9.e30.bogussignature",
	} {
		rc := DecodeRoleClaims(tokenStr)
		if rc.RoleName != RoleUnknown {
			t.Fatalf("token %q decoded to role %q, want RoleUnknown", tokenStr, rc.RoleName)
		}
	}
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("user@freightline.example", 2, RoleMainUser, 0)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateJWT(tampered); err == nil {
		t.Fatalf("tampered token validated")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !ValidatePassword(hash, "s3cret-pass") {
		t.Fatalf("correct password rejected")
	}
	if ValidatePassword(hash, "wrong-pass") {
		t.Fatalf("wrong password accepted")
	}
}

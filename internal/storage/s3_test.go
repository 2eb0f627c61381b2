package storage

import "testing"

func TestProfileImageKey(t *testing.T) {
	key := ProfileImageKey("68b0f2c1a2b3c4d5e6f70809")
	want := "profile_images/profile_68b0f2c1a2b3c4d5e6f70809"
	if key != want {
		t.Errorf("ProfileImageKey() = %q, want %q", key, want)
	}
}

func TestObjectURLPublicOverride(t *testing.T) {
	s := &S3ImageStore{cfg: Config{PublicURL: "https://cdn.example.com/"}}
	got := s.objectURL("profile_images/profile_1")
	want := "https://cdn.example.com/profile_images/profile_1"
	if got != want {
		t.Errorf("objectURL() = %q, want %q", got, want)
	}
}

func TestObjectURLCustomEndpoint(t *testing.T) {
	s := &S3ImageStore{cfg: Config{Bucket: "profiles", BaseEndpoint: "http://127.0.0.1:9000"}}
	got := s.objectURL("profile_images/profile_1")
	want := "http://127.0.0.1:9000/profiles/profile_images/profile_1"
	if got != want {
		t.Errorf("objectURL() = %q, want %q", got, want)
	}
}

func TestObjectURLAWS(t *testing.T) {
	s := &S3ImageStore{cfg: Config{Bucket: "profiles", Region: "us-east-1"}}
	got := s.objectURL("profile_images/profile_1")
	want := "https://profiles.s3.us-east-1.amazonaws.com/profile_images/profile_1"
	if got != want {
		t.Errorf("objectURL() = %q, want %q", got, want)
	}
}
